package scheduler

import (
	"context"
	"time"

	"casaora_backend/internal/applications/domain"
	"casaora_backend/internal/events"
	"casaora_backend/internal/upstream"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"

	"github.com/google/uuid"
)

// ApplicationSource lists applications and organization members from the core
// backend.
type ApplicationSource interface {
	ListApplications(ctx context.Context, filters upstream.ListFilters) ([]map[string]any, error)
	ListMembers(ctx context.Context, orgID string) ([]upstream.MemberOption, error)
}

// SLAMonitor periodically scans open applications and publishes a breach
// event for each one that crossed its first-response deadline. Each
// application is reported at most once per process lifetime.
type SLAMonitor struct {
	source   ApplicationSource
	bus      events.Bus
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time
	notified map[string]struct{}
}

func NewSLAMonitor(cfg config.SchedulerConfig, source ApplicationSource, bus events.Bus, log *logger.Logger) *SLAMonitor {
	interval := cfg.GetSLACheckInterval()
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &SLAMonitor{
		source:   source,
		bus:      bus,
		interval: interval,
		log:      log,
		now:      time.Now,
		notified: make(map[string]struct{}),
	}
}

func (m *SLAMonitor) Run(ctx context.Context) {
	if m == nil || m.source == nil || m.bus == nil {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m.sweep(ctx)
	}
}

func (m *SLAMonitor) sweep(ctx context.Context) {
	records, err := m.source.ListApplications(ctx, upstream.ListFilters{})
	if err != nil {
		m.log.Warn("sla sweep failed to list applications", "error", err)
		return
	}

	now := m.now()
	memberEmails := make(map[string]map[string]string)
	breached := 0

	for _, record := range records {
		if record == nil {
			continue
		}
		row := domain.Normalize(record)
		if row.ID == "" {
			continue
		}
		if _, seen := m.notified[row.ID]; seen {
			continue
		}

		// Only rows still waiting on a first response can breach.
		status := domain.CanonicalStatus(row.Status)
		if status != domain.StatusNew && status != domain.StatusScreening {
			continue
		}
		if domain.ClassifySLA(row, now) != domain.SLABreached {
			continue
		}

		orgID := recordString(record, "organization_id")
		m.notified[row.ID] = struct{}{}
		breached++

		m.bus.Publish(ctx, events.ApplicationSLABreached{
			BaseEvent:      events.NewBaseEvent(),
			ApplicationID:  parseUUID(row.ID),
			OrganizationID: parseUUID(orgID),
			ApplicantName:  row.FullName,
			ListingTitle:   row.ListingTitle,
			AssigneeID:     parseUUID(row.AssignedUserID),
			AssigneeEmail:  m.assigneeEmail(ctx, memberEmails, orgID, row.AssignedUserID),
			MinutesOverdue: domain.MinutesOverdue(row, now),
		})
	}

	if breached > 0 {
		m.log.Info("sla sweep published breach events", "count", breached)
	}
}

// assigneeEmail resolves a member's email, fetching each organization's
// member list at most once per sweep.
func (m *SLAMonitor) assigneeEmail(ctx context.Context, cache map[string]map[string]string, orgID, userID string) string {
	if orgID == "" || userID == "" {
		return ""
	}

	emails, ok := cache[orgID]
	if !ok {
		emails = make(map[string]string)
		members, err := m.source.ListMembers(ctx, orgID)
		if err != nil {
			m.log.Warn("sla sweep failed to list members", "organizationId", orgID, "error", err)
		} else {
			for _, member := range members {
				emails[member.UserID] = member.Email
			}
		}
		cache[orgID] = emails
	}

	return emails[userID]
}

func recordString(record map[string]any, key string) string {
	value, _ := record[key].(string)
	return value
}

func parseUUID(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
