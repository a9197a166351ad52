package notification

import (
	"context"
	"testing"

	"casaora_backend/internal/events"
	"casaora_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeSender struct {
	statusCalls    []string
	convertedCalls []string
	breachCalls    []string
	breachURLs     []string
}

func (f *fakeSender) SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, listingTitle, statusLabel string) error {
	f.statusCalls = append(f.statusCalls, toEmail+"|"+statusLabel)
	return nil
}

func (f *fakeSender) SendSLABreachEmail(ctx context.Context, toEmail, applicantName, listingTitle, applicationURL string, minutesOverdue int) error {
	f.breachCalls = append(f.breachCalls, toEmail)
	f.breachURLs = append(f.breachURLs, applicationURL)
	return nil
}

func (f *fakeSender) SendLeaseConvertedEmail(ctx context.Context, toEmail, applicantName, listingTitle string) error {
	f.convertedCalls = append(f.convertedCalls, toEmail)
	return nil
}

func (f *fakeSender) SendCustomEmail(ctx context.Context, toEmail, subject, body string) error {
	return nil
}

type fakeWhatsApp struct {
	messages []string
}

func (f *fakeWhatsApp) SendMessage(ctx context.Context, phoneNumber string, message string) error {
	f.messages = append(f.messages, phoneNumber+"|"+message)
	return nil
}

type noopNotificationConfig struct{}

func (noopNotificationConfig) GetAppBaseURL() string { return "https://app.casaora.test" }

func newTestModule() (*Module, *fakeSender, *fakeWhatsApp) {
	sender := &fakeSender{}
	wa := &fakeWhatsApp{}
	m := New(sender, noopNotificationConfig{}, logger.New("test"))
	m.SetWhatsAppSender(wa)
	return m, sender, wa
}

func TestStatusChangedNotifiesApplicant(t *testing.T) {
	m, sender, wa := newTestModule()

	err := m.Handle(context.Background(), events.ApplicationStatusChanged{
		ApplicationID:  uuid.New(),
		ToStatus:       "visit_scheduled",
		ApplicantName:  "Ana",
		ApplicantPhone: "+595981123456",
		ApplicantEmail: "ana@example.com",
		ListingTitle:   "Depto Centro",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.statusCalls) != 1 {
		t.Fatalf("expected 1 status email, got %d", len(sender.statusCalls))
	}
	if got, want := sender.statusCalls[0], "ana@example.com|Visita agendada"; got != want {
		t.Errorf("status email = %q, want %q", got, want)
	}
	if len(wa.messages) != 1 {
		t.Errorf("expected 1 whatsapp message, got %d", len(wa.messages))
	}
}

func TestStatusChangedSkipsMissingChannels(t *testing.T) {
	m, sender, wa := newTestModule()

	err := m.Handle(context.Background(), events.ApplicationStatusChanged{
		ApplicationID: uuid.New(),
		ToStatus:      "qualified",
		ApplicantName: "Luis",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.statusCalls) != 0 {
		t.Errorf("expected no emails without an address, got %d", len(sender.statusCalls))
	}
	if len(wa.messages) != 0 {
		t.Errorf("expected no whatsapp messages without a phone, got %d", len(wa.messages))
	}
}

func TestConvertedSendsLeaseEmail(t *testing.T) {
	m, sender, _ := newTestModule()

	err := m.Handle(context.Background(), events.ApplicationConverted{
		ApplicationID:  uuid.New(),
		LeaseID:        uuid.New(),
		ApplicantName:  "Ana",
		ApplicantEmail: "ana@example.com",
		ListingTitle:   "Depto Centro",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.convertedCalls) != 1 {
		t.Fatalf("expected 1 lease converted email, got %d", len(sender.convertedCalls))
	}
}

func TestSLABreachedEmailsAssignee(t *testing.T) {
	m, sender, _ := newTestModule()
	appID := uuid.New()

	err := m.Handle(context.Background(), events.ApplicationSLABreached{
		ApplicationID:  appID,
		ApplicantName:  "Ana",
		AssigneeEmail:  "agente@casaora.test",
		MinutesOverdue: 45,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.breachCalls) != 1 {
		t.Fatalf("expected 1 breach email, got %d", len(sender.breachCalls))
	}
	if sender.breachCalls[0] != "agente@casaora.test" {
		t.Errorf("breach email recipient = %q", sender.breachCalls[0])
	}
	if got, want := sender.breachURLs[0], "https://app.casaora.test/applications/"+appID.String(); got != want {
		t.Errorf("breach email link = %q, want %q", got, want)
	}
}

func TestSLABreachedWithoutAssigneeOnlyLogs(t *testing.T) {
	m, sender, _ := newTestModule()

	err := m.Handle(context.Background(), events.ApplicationSLABreached{
		ApplicationID:  uuid.New(),
		ApplicantName:  "Ana",
		MinutesOverdue: 10,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(sender.breachCalls) != 0 {
		t.Errorf("expected no breach email without assignee, got %d", len(sender.breachCalls))
	}
}
