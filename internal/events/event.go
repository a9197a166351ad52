// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"casaora_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Application Pipeline Events
// =============================================================================

// ApplicationStatusChanged is published after a status transition is accepted
// and persisted upstream.
type ApplicationStatusChanged struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	FromStatus     string    `json:"fromStatus"`
	ToStatus       string    `json:"toStatus"`
	ActorID        uuid.UUID `json:"actorId"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantPhone string    `json:"applicantPhone"`
	ApplicantEmail string    `json:"applicantEmail"`
	ListingTitle   string    `json:"listingTitle"`
}

func (e ApplicationStatusChanged) EventName() string { return "applications.status.changed" }

// ApplicationAssigned is published when an application is assigned to a user.
type ApplicationAssigned struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	AssigneeID     uuid.UUID `json:"assigneeId"`
	ActorID        uuid.UUID `json:"actorId"`
}

func (e ApplicationAssigned) EventName() string { return "applications.assigned" }

// ApplicationConverted is published when an application becomes a signed lease.
type ApplicationConverted struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	LeaseID        uuid.UUID `json:"leaseId"`
	ActorID        uuid.UUID `json:"actorId"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantPhone string    `json:"applicantPhone"`
	ApplicantEmail string    `json:"applicantEmail"`
	ListingTitle   string    `json:"listingTitle"`
}

func (e ApplicationConverted) EventName() string { return "applications.converted" }

// ApplicationSLABreached is published by the SLA monitor when an application
// crosses its first-response deadline without contact.
type ApplicationSLABreached struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	ApplicantName  string    `json:"applicantName"`
	ListingTitle   string    `json:"listingTitle"`
	AssigneeID     uuid.UUID `json:"assigneeId"`
	AssigneeEmail  string    `json:"assigneeEmail"`
	MinutesOverdue float64   `json:"minutesOverdue"`
}

func (e ApplicationSLABreached) EventName() string { return "applications.sla.breached" }
