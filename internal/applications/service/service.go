// Package service implements the applications pipeline use cases: derived
// list/board/summary views over raw upstream records, contact link
// construction, and validated mutation forwarding.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"casaora_backend/internal/applications/domain"
	"casaora_backend/internal/applications/transport"
	"casaora_backend/internal/events"
	"casaora_backend/internal/messaging"
	"casaora_backend/internal/upstream"
	"casaora_backend/platform/apperr"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CoreAPI is the slice of the upstream client this service consumes.
type CoreAPI interface {
	ListApplications(ctx context.Context, filters upstream.ListFilters) ([]map[string]any, error)
	GetApplication(ctx context.Context, id string) (map[string]any, error)
	UpdateApplicationStatus(ctx context.Context, id string, patch upstream.StatusPatch) error
	AssignApplication(ctx context.Context, id, userID string) error
	ConvertToLease(ctx context.Context, id string, input upstream.ConvertInput) (upstream.ConvertResult, error)
	ListMembers(ctx context.Context, orgID string) ([]upstream.MemberOption, error)
	ListMessageTemplates(ctx context.Context, orgID string) ([]map[string]any, error)
}

// Service is the applications pipeline service.
type Service struct {
	api         CoreAPI
	cache       *upstream.ListCache
	bus         events.Bus
	log         *logger.Logger
	phoneRegion string
	now         func() time.Time
}

// New creates the applications service. cache may be nil.
func New(api CoreAPI, cache *upstream.ListCache, bus events.Bus, cfg config.PhoneConfig, log *logger.Logger) *Service {
	region := ""
	if cfg != nil {
		region = cfg.GetDefaultPhoneRegion()
	}
	return &Service{
		api:         api,
		cache:       cache,
		bus:         bus,
		log:         log,
		phoneRegion: region,
		now:         time.Now,
	}
}

func (s *Service) cacheKey(orgID string) string {
	return "applications:" + orgID
}

// fetchRows loads and normalizes the org's applications. Only the
// unfiltered org list is cached; filtered fetches always hit upstream.
func (s *Service) fetchRows(ctx context.Context, orgID string, req transport.ListApplicationsRequest) ([]domain.ApplicationRow, error) {
	filters := upstream.ListFilters{
		OrganizationID: orgID,
		Status:         req.Status,
		AssignedUserID: req.AssignedUserID,
		ListingID:      req.ListingID,
		Search:         req.Search,
	}
	unfiltered := req.Status == "" && req.AssignedUserID == "" && req.ListingID == "" && req.Search == "" && !req.Unassigned

	if unfiltered {
		if records, ok := s.cache.GetRecords(ctx, s.cacheKey(orgID)); ok {
			return domain.NormalizeAll(records), nil
		}
	}

	records, err := s.api.ListApplications(ctx, filters)
	if err != nil {
		return nil, apperr.Upstream("could not load applications", err)
	}
	if unfiltered {
		s.cache.SetRecords(ctx, s.cacheKey(orgID), records)
	}

	rows := domain.NormalizeAll(records)
	if req.Unassigned {
		filtered := rows[:0]
		for _, row := range rows {
			if row.IsUnassigned() {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	return rows, nil
}

// List returns the flat, derived view of the org's applications.
func (s *Service) List(ctx context.Context, orgID string, req transport.ListApplicationsRequest) ([]transport.ApplicationView, error) {
	rows, err := s.fetchRows(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	return s.views(rows), nil
}

// Board returns rows bucketed into funnel lanes, most recent first per lane.
func (s *Service) Board(ctx context.Context, orgID string, req transport.ListApplicationsRequest) (transport.BoardResponse, error) {
	rows, err := s.fetchRows(ctx, orgID, req)
	if err != nil {
		return transport.BoardResponse{}, err
	}

	lanes := domain.AssignLanes(rows)
	response := transport.BoardResponse{
		Lanes: make(map[string][]transport.ApplicationView, len(lanes)),
		Order: domain.LaneOrder,
	}
	for lane, laneRows := range lanes {
		response.Lanes[lane] = s.views(laneRows)
	}
	return response, nil
}

// Summary returns the aggregate metrics for the filtered set.
func (s *Service) Summary(ctx context.Context, orgID string, req transport.ListApplicationsRequest) (domain.Summary, error) {
	rows, err := s.fetchRows(ctx, orgID, req)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Aggregate(rows, s.now()), nil
}

// Alerts returns at-risk and breached rows, most urgent first.
func (s *Service) Alerts(ctx context.Context, orgID string) ([]transport.ApplicationView, error) {
	rows, err := s.fetchRows(ctx, orgID, transport.ListApplicationsRequest{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	urgent := make([]domain.ApplicationRow, 0, len(rows))
	for _, row := range rows {
		if domain.ClassifySLA(row, now) == domain.SLABreached || domain.IsAtRisk(row) {
			urgent = append(urgent, row)
		}
	}
	return s.views(domain.SortAlerts(urgent, now)), nil
}

// ContactLink builds the outbound contact action for one application. The
// row and the org's templates are fetched concurrently.
func (s *Service) ContactLink(ctx context.Context, orgID, id, channel string) (messaging.ContactLink, error) {
	var (
		record    map[string]any
		templates []messaging.TemplateOption
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		record, err = s.api.GetApplication(groupCtx, id)
		return err
	})
	group.Go(func() error {
		records, err := s.api.ListMessageTemplates(groupCtx, orgID)
		if err != nil {
			return err
		}
		templates = messaging.NormalizeTemplates(records)
		return nil
	})
	if err := group.Wait(); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return messaging.ContactLink{}, apperr.NotFound("application not found")
		}
		return messaging.ContactLink{}, apperr.Upstream("could not load application", err)
	}

	return messaging.BuildContactLink(domain.Normalize(record), templates, channel, s.phoneRegion), nil
}

// UpdateStatus validates a transition against the authoritative table and
// forwards it upstream. The overlay on the caller's side stays optimistic;
// a validation refusal here is what triggers its revert.
func (s *Service) UpdateStatus(ctx context.Context, orgID string, actorID uuid.UUID, id string, req transport.UpdateStatusRequest) error {
	record, err := s.api.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return apperr.NotFound("application not found")
		}
		return apperr.Upstream("could not load application", err)
	}
	row := domain.Normalize(record)

	next := string(req.Status)
	if !domain.CanTransition(row.Status, next) {
		return apperr.Validation("transition from " + domain.CanonicalStatus(row.Status) + " to " + next + " is not allowed").
			WithDetails(map[string]any{"allowed": domain.TransitionOptions(row.Status)})
	}

	patch := upstream.StatusPatch{Status: next, Note: req.Note}
	if next == domain.StatusRejected {
		patch.RejectedReason = req.RejectedReason
	}
	if err := s.api.UpdateApplicationStatus(ctx, id, patch); err != nil {
		return apperr.Upstream("could not update status", err)
	}
	s.cache.Invalidate(ctx, s.cacheKey(orgID))

	s.bus.Publish(ctx, events.ApplicationStatusChanged{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  parseUUID(id),
		OrganizationID: parseUUID(orgID),
		FromStatus:     domain.CanonicalStatus(row.Status),
		ToStatus:       next,
		ActorID:        actorID,
		ApplicantName:  row.FullName,
		ApplicantPhone: row.Phone,
		ApplicantEmail: row.Email,
		ListingTitle:   row.ListingTitle,
	})
	return nil
}

// Assign sets or clears the assigned member and publishes the event.
func (s *Service) Assign(ctx context.Context, orgID string, actorID uuid.UUID, id, assigneeID string) error {
	if err := s.api.AssignApplication(ctx, id, assigneeID); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return apperr.NotFound("application not found")
		}
		return apperr.Upstream("could not update assignment", err)
	}
	s.cache.Invalidate(ctx, s.cacheKey(orgID))

	s.bus.Publish(ctx, events.ApplicationAssigned{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  parseUUID(id),
		OrganizationID: parseUUID(orgID),
		AssigneeID:     parseUUID(assigneeID),
		ActorID:        actorID,
	})
	return nil
}

// Convert performs the lease conversion for an eligible application.
func (s *Service) Convert(ctx context.Context, orgID string, actorID uuid.UUID, id string, req transport.ConvertToLeaseRequest) (transport.ConvertToLeaseResponse, error) {
	record, err := s.api.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return transport.ConvertToLeaseResponse{}, apperr.NotFound("application not found")
		}
		return transport.ConvertToLeaseResponse{}, apperr.Upstream("could not load application", err)
	}
	row := domain.Normalize(record)

	if !domain.CanConvert(row.Status) {
		return transport.ConvertToLeaseResponse{}, apperr.Validation(
			"application in status " + domain.CanonicalStatus(row.Status) + " cannot be converted to a lease")
	}

	result, err := s.api.ConvertToLease(ctx, id, upstream.ConvertInput{
		MonthlyRent:   req.MonthlyRent,
		DepositAmount: req.DepositAmount,
		StartDate:     req.StartDate,
		Note:          req.Note,
	})
	if err != nil {
		return transport.ConvertToLeaseResponse{}, apperr.Upstream("could not convert application", err)
	}
	s.cache.Invalidate(ctx, s.cacheKey(orgID))

	s.bus.Publish(ctx, events.ApplicationConverted{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  parseUUID(id),
		OrganizationID: parseUUID(orgID),
		LeaseID:        parseUUID(result.LeaseID),
		ActorID:        actorID,
		ApplicantName:  row.FullName,
		ApplicantPhone: row.Phone,
		ApplicantEmail: row.Email,
		ListingTitle:   row.ListingTitle,
	})

	return transport.ConvertToLeaseResponse{
		LeaseID:       result.LeaseID,
		ApplicationID: result.ApplicationID,
		Status:        result.Status,
	}, nil
}

// MemberOptions returns the org's assignable members.
func (s *Service) MemberOptions(ctx context.Context, orgID string) ([]transport.MemberOptionView, error) {
	members, err := s.api.ListMembers(ctx, orgID)
	if err != nil {
		return nil, apperr.Upstream("could not load members", err)
	}

	views := make([]transport.MemberOptionView, 0, len(members))
	for _, member := range members {
		views = append(views, transport.MemberOptionView{
			UserID:   member.UserID,
			FullName: member.FullName,
			Email:    member.Email,
		})
	}
	return views, nil
}

// views derives the display state for each row. Rows the backend has not
// scored get a locally recomputed score and band.
func (s *Service) views(rows []domain.ApplicationRow) []transport.ApplicationView {
	now := s.now()
	out := make([]transport.ApplicationView, 0, len(rows))
	for _, row := range rows {
		score := row.QualificationScore
		band := row.QualificationBand
		if score <= 0 && band == "" {
			score = domain.QualificationScore(row)
			band = domain.BandForScore(score)
		}

		sla := domain.ClassifySLA(row, now)
		out = append(out, transport.ApplicationView{
			ID:                   row.ID,
			FullName:             row.FullName,
			Email:                row.Email,
			Phone:                row.Phone,
			Status:               domain.CanonicalStatus(row.Status),
			StatusLabel:          domain.StatusLabel(row.Status),
			ListingTitle:         row.ListingTitle,
			MonthlyIncome:        row.MonthlyIncome,
			FirstResponseMinutes: row.FirstResponseMinutes,
			CreatedAt:            row.CreatedAt,
			AssignedUserID:       row.AssignedUserID,
			AssignedUserName:     row.AssignedUserName,
			SLAStatus:            sla,
			SLATone:              domain.SLATone(sla, row.ResponseSLAAlert),
			SLADueAt:             row.ResponseSLADueAt,
			Qualification:        domain.QualificationDisplay(band),
			QualificationScore:   score,
			IncomeToRentRatio:    row.IncomeToRentRatio,
			Lane:                 domain.LaneForStatus(row.Status),
			Guards:               domain.GuardsFor(row.Status),
			AllowedTransitions:   domain.TransitionOptions(row.Status),
		})
	}
	return out
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
