package service

import (
	"context"
	"testing"
	"time"

	"casaora_backend/internal/applications/transport"
	"casaora_backend/internal/events"
	"casaora_backend/internal/upstream"
	"casaora_backend/platform/apperr"
	platformevents "casaora_backend/platform/events"
	"casaora_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeCoreAPI struct {
	applications []map[string]any
	application  map[string]any
	templates    []map[string]any
	members      []upstream.MemberOption

	statusPatches []upstream.StatusPatch
	assignments   []string
	convertResult upstream.ConvertResult
	getErr        error
}

func (f *fakeCoreAPI) ListApplications(ctx context.Context, filters upstream.ListFilters) ([]map[string]any, error) {
	return f.applications, nil
}

func (f *fakeCoreAPI) GetApplication(ctx context.Context, id string) (map[string]any, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.application, nil
}

func (f *fakeCoreAPI) UpdateApplicationStatus(ctx context.Context, id string, patch upstream.StatusPatch) error {
	f.statusPatches = append(f.statusPatches, patch)
	return nil
}

func (f *fakeCoreAPI) AssignApplication(ctx context.Context, id, userID string) error {
	f.assignments = append(f.assignments, userID)
	return nil
}

func (f *fakeCoreAPI) ConvertToLease(ctx context.Context, id string, input upstream.ConvertInput) (upstream.ConvertResult, error) {
	return f.convertResult, nil
}

func (f *fakeCoreAPI) ListMembers(ctx context.Context, orgID string) ([]upstream.MemberOption, error) {
	return f.members, nil
}

func (f *fakeCoreAPI) ListMessageTemplates(ctx context.Context, orgID string) ([]map[string]any, error) {
	return f.templates, nil
}

type stubPhoneConfig struct{}

func (stubPhoneConfig) GetDefaultPhoneRegion() string { return "PY" }

func newTestService(api *fakeCoreAPI) (*Service, *platformevents.InMemoryBus) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	svc := New(api, nil, bus, stubPhoneConfig{}, log)
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc, bus
}

func TestListDerivesViewState(t *testing.T) {
	api := &fakeCoreAPI{applications: []map[string]any{
		{
			"id": "app-1", "full_name": "Ana", "status": "new",
			"created_at": "2026-08-30T11:00:00Z", "first_response_minutes": 30.0,
			"qualification_band": "strong", "qualification_score": 82.0,
		},
		{
			"id": "app-2", "full_name": "Luis", "status": "offer_sent",
			"created_at": "2026-08-29T11:00:00Z",
			"phone":      "+595981000000", "monthly_income": 5000000.0,
		},
	}}
	svc, _ := newTestService(api)

	views, err := svc.List(context.Background(), "org-1", transport.ListApplicationsRequest{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}

	first := views[0]
	if first.SLAStatus != "met" {
		t.Errorf("SLAStatus = %q, want met for 30-minute response", first.SLAStatus)
	}
	if first.Qualification.Band != "strong" {
		t.Errorf("Qualification.Band = %q, want backend band passed through", first.Qualification.Band)
	}
	if !first.Guards.CanMoveToScreening {
		t.Error("new application should be screenable")
	}
	if first.Lane != "incoming" {
		t.Errorf("Lane = %q, want incoming", first.Lane)
	}

	// Unscored row gets a local score and band.
	second := views[1]
	if second.QualificationScore <= 0 {
		t.Errorf("QualificationScore = %v, want local recomputation", second.QualificationScore)
	}
	if second.Qualification.Band == "unscored" {
		t.Error("row with contact and income data should receive a band")
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	api := &fakeCoreAPI{application: map[string]any{"id": "app-1", "status": "new"}}
	svc, _ := newTestService(api)

	err := svc.UpdateStatus(context.Background(), "org-1", uuid.New(), "app-1",
		transport.UpdateStatusRequest{Status: transport.StatusContractSigned})

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(api.statusPatches) != 0 {
		t.Error("illegal transition must not reach upstream")
	}
}

func TestUpdateStatusForwardsLegalTransition(t *testing.T) {
	api := &fakeCoreAPI{application: map[string]any{"id": "app-1", "status": "screening"}}
	svc, bus := newTestService(api)

	received := make(chan events.ApplicationStatusChanged, 1)
	bus.Subscribe(events.ApplicationStatusChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if typed, ok := e.(events.ApplicationStatusChanged); ok {
			received <- typed
		}
		return nil
	}))

	err := svc.UpdateStatus(context.Background(), "org-1", uuid.New(), "app-1",
		transport.UpdateStatusRequest{Status: transport.StatusQualified, Note: "docs ok"})
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if len(api.statusPatches) != 1 || api.statusPatches[0].Status != "qualified" {
		t.Fatalf("patches = %v, want one qualified patch", api.statusPatches)
	}

	select {
	case event := <-received:
		if event.FromStatus != "screening" || event.ToStatus != "qualified" {
			t.Errorf("event = %+v, want screening to qualified", event)
		}
	case <-time.After(time.Second):
		t.Fatal("status change event not published")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	api := &fakeCoreAPI{getErr: upstream.ErrNotFound}
	svc, _ := newTestService(api)

	err := svc.UpdateStatus(context.Background(), "org-1", uuid.New(), "missing",
		transport.UpdateStatusRequest{Status: transport.StatusScreening})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestConvertRequiresEligibleStatus(t *testing.T) {
	api := &fakeCoreAPI{
		application:   map[string]any{"id": "app-1", "status": "new"},
		convertResult: upstream.ConvertResult{LeaseID: uuid.NewString()},
	}
	svc, _ := newTestService(api)

	_, err := svc.Convert(context.Background(), "org-1", uuid.New(), "app-1",
		transport.ConvertToLeaseRequest{MonthlyRent: 2500000, StartDate: "2026-09-01"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation error for new application", err)
	}

	api.application = map[string]any{"id": "app-1", "status": "offer_sent"}
	result, err := svc.Convert(context.Background(), "org-1", uuid.New(), "app-1",
		transport.ConvertToLeaseRequest{MonthlyRent: 2500000, StartDate: "2026-09-01"})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if result.LeaseID == "" {
		t.Error("LeaseID missing from conversion result")
	}
}

func TestContactLinkBuildsWhatsApp(t *testing.T) {
	api := &fakeCoreAPI{
		application: map[string]any{
			"id": "app-1", "full_name": "Ana", "phone": "+595 981 000 000", "status": "new",
		},
		templates: []map[string]any{
			{"id": "t1", "channel": "whatsapp", "template_key": "application_new", "body": "Hola {{full_name}}", "is_active": true},
		},
	}
	svc, _ := newTestService(api)

	link, err := svc.ContactLink(context.Background(), "org-1", "app-1", "whatsapp")
	if err != nil {
		t.Fatalf("ContactLink error: %v", err)
	}
	if link.TemplateID != "t1" {
		t.Errorf("TemplateID = %q, want t1", link.TemplateID)
	}
	if link.URL == "" {
		t.Error("URL missing for row with phone")
	}
}

func TestBoardBucketsRows(t *testing.T) {
	api := &fakeCoreAPI{applications: []map[string]any{
		{"id": "a", "status": "new", "created_at": "2026-08-30T10:00:00Z"},
		{"id": "b", "status": "contract_signed", "created_at": "2026-08-29T10:00:00Z"},
		{"id": "c", "status": "weird", "created_at": "2026-08-28T10:00:00Z"},
	}}
	svc, _ := newTestService(api)

	board, err := svc.Board(context.Background(), "org-1", transport.ListApplicationsRequest{})
	if err != nil {
		t.Fatalf("Board error: %v", err)
	}
	if len(board.Lanes["incoming"]) != 1 || len(board.Lanes["converted"]) != 1 {
		t.Errorf("lanes = %v, want one incoming, one converted", board.Lanes)
	}
	total := 0
	for _, lane := range board.Lanes {
		total += len(lane)
	}
	if total != 2 {
		t.Errorf("board holds %d rows, want 2 (unknown status stays off the board)", total)
	}
}
