// Package notification provides event handlers for sending notifications
// in response to pipeline events. Domain modules publish events and never
// talk to the WhatsApp gateway or SMTP directly.
package notification

import (
	"context"
	"fmt"
	"strings"

	"casaora_backend/internal/applications/domain"
	"casaora_backend/internal/email"
	"casaora_backend/internal/events"
	apphttp "casaora_backend/internal/http"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"

	"github.com/google/uuid"
)

// WhatsAppSender sends WhatsApp messages.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender   email.Sender
	whatsapp WhatsAppSender
	cfg      config.NotificationConfig
	log      *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterRoutes is a no-op. The notification module only consumes events.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {}

// SetWhatsAppSender injects the gateway client. Optional, WhatsApp sends are
// skipped when unset.
func (m *Module) SetWhatsAppSender(sender WhatsAppSender) { m.whatsapp = sender }

// RegisterHandlers subscribes the module to all events it cares about.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.ApplicationStatusChanged{}.EventName(), m)
	bus.Subscribe(events.ApplicationConverted{}.EventName(), m)
	bus.Subscribe(events.ApplicationSLABreached{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ApplicationStatusChanged:
		return m.handleStatusChanged(ctx, e)
	case events.ApplicationConverted:
		return m.handleConverted(ctx, e)
	case events.ApplicationSLABreached:
		return m.handleSLABreached(ctx, e)
	default:
		m.log.Warn("notification module received unknown event", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleStatusChanged(ctx context.Context, e events.ApplicationStatusChanged) error {
	label := domain.StatusLabel(e.ToStatus)
	listing := strings.TrimSpace(e.ListingTitle)
	if listing == "" {
		listing = "tu propiedad"
	}

	if m.whatsapp != nil && e.ApplicantPhone != "" {
		message := fmt.Sprintf("Hola %s, tu solicitud para %s fue actualizada. Estado actual: %s.",
			e.ApplicantName, listing, label)
		if err := m.whatsapp.SendMessage(ctx, e.ApplicantPhone, message); err != nil {
			m.log.Error("failed to send whatsapp status update",
				"applicationId", e.ApplicationID,
				"error", err,
			)
		}
	}

	if e.ApplicantEmail != "" {
		if err := m.sender.SendApplicationStatusEmail(ctx, e.ApplicantEmail, e.ApplicantName, listing, label); err != nil {
			m.log.Error("failed to send status update email",
				"applicationId", e.ApplicationID,
				"email", e.ApplicantEmail,
				"error", err,
			)
			return err
		}
		m.log.Info("status update email sent", "applicationId", e.ApplicationID, "status", e.ToStatus)
	}
	return nil
}

func (m *Module) handleConverted(ctx context.Context, e events.ApplicationConverted) error {
	listing := strings.TrimSpace(e.ListingTitle)
	if listing == "" {
		listing = "tu propiedad"
	}

	if m.whatsapp != nil && e.ApplicantPhone != "" {
		message := fmt.Sprintf("¡Felicitaciones %s! Tu solicitud para %s se convirtió en un contrato firmado.",
			e.ApplicantName, listing)
		if err := m.whatsapp.SendMessage(ctx, e.ApplicantPhone, message); err != nil {
			m.log.Error("failed to send whatsapp conversion notice",
				"applicationId", e.ApplicationID,
				"error", err,
			)
		}
	}

	if e.ApplicantEmail != "" {
		if err := m.sender.SendLeaseConvertedEmail(ctx, e.ApplicantEmail, e.ApplicantName, listing); err != nil {
			m.log.Error("failed to send lease converted email",
				"applicationId", e.ApplicationID,
				"email", e.ApplicantEmail,
				"error", err,
			)
			return err
		}
		m.log.Info("lease converted email sent", "applicationId", e.ApplicationID, "leaseId", e.LeaseID)
	}
	return nil
}

func (m *Module) handleSLABreached(ctx context.Context, e events.ApplicationSLABreached) error {
	m.log.Warn("application breached first-response window",
		"applicationId", e.ApplicationID,
		"organizationId", e.OrganizationID,
		"minutesOverdue", int(e.MinutesOverdue),
	)

	if e.AssigneeEmail == "" {
		return nil
	}
	if err := m.sender.SendSLABreachEmail(ctx, e.AssigneeEmail, e.ApplicantName, e.ListingTitle, m.applicationURL(e.ApplicationID), int(e.MinutesOverdue)); err != nil {
		m.log.Error("failed to send sla breach email",
			"applicationId", e.ApplicationID,
			"email", e.AssigneeEmail,
			"error", err,
		)
		return err
	}
	m.log.Info("sla breach email sent", "applicationId", e.ApplicationID, "email", e.AssigneeEmail)
	return nil
}

// applicationURL builds the admin deep link for an application, or empty
// when no app base URL is configured.
func (m *Module) applicationURL(id uuid.UUID) string {
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	if base == "" || id == uuid.Nil {
		return ""
	}
	return base + "/applications/" + id.String()
}
