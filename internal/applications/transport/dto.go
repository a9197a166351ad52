package transport

import (
	"casaora_backend/internal/applications/domain"
)

// ApplicationStatus is the pipeline status enum accepted by mutations.
type ApplicationStatus string

const (
	StatusNew            ApplicationStatus = "new"
	StatusScreening      ApplicationStatus = "screening"
	StatusQualified      ApplicationStatus = "qualified"
	StatusVisitScheduled ApplicationStatus = "visit_scheduled"
	StatusOfferSent      ApplicationStatus = "offer_sent"
	StatusContractSigned ApplicationStatus = "contract_signed"
	StatusRejected       ApplicationStatus = "rejected"
	StatusLost           ApplicationStatus = "lost"
)

// Channel is the contact channel accepted by the contact-link endpoint.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Request DTOs

type ListApplicationsRequest struct {
	Status         string `form:"status" validate:"omitempty,oneof=new screening qualified visit_scheduled offer_sent contract_signed rejected lost"`
	AssignedUserID string `form:"assignedUserId" validate:"omitempty,uuid"`
	ListingID      string `form:"listingId" validate:"omitempty,uuid"`
	Search         string `form:"search" validate:"omitempty,max=200"`
	Unassigned     bool   `form:"unassigned"`
}

type UpdateStatusRequest struct {
	Status         ApplicationStatus `json:"status" validate:"required,oneof=new screening qualified visit_scheduled offer_sent contract_signed rejected lost"`
	Note           string            `json:"note,omitempty" validate:"omitempty,max=1000"`
	RejectedReason string            `json:"rejectedReason,omitempty" validate:"omitempty,max=500"`
}

type AssignRequest struct {
	AssigneeID string `json:"assigneeId" validate:"omitempty,uuid"`
}

type ConvertToLeaseRequest struct {
	MonthlyRent   float64 `json:"monthlyRent" validate:"required,gt=0"`
	DepositAmount float64 `json:"depositAmount,omitempty" validate:"omitempty,gte=0"`
	StartDate     string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	Note          string  `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// Response DTOs

// ApplicationView is one row with its derived pipeline state.
type ApplicationView struct {
	ID                   string             `json:"id"`
	FullName             string             `json:"fullName"`
	Email                string             `json:"email"`
	Phone                string             `json:"phone"`
	Status               string             `json:"status"`
	StatusLabel          string             `json:"statusLabel"`
	ListingTitle         string             `json:"listingTitle"`
	MonthlyIncome        float64            `json:"monthlyIncome"`
	FirstResponseMinutes float64            `json:"firstResponseMinutes"`
	CreatedAt            string             `json:"createdAt"`
	AssignedUserID       string             `json:"assignedUserId,omitempty"`
	AssignedUserName     string             `json:"assignedUserName,omitempty"`
	SLAStatus            string             `json:"slaStatus"`
	SLATone              string             `json:"slaTone"`
	SLADueAt             string             `json:"slaDueAt,omitempty"`
	Qualification        domain.BandDisplay `json:"qualification"`
	QualificationScore   float64            `json:"qualificationScore"`
	IncomeToRentRatio    *float64           `json:"incomeToRentRatio,omitempty"`
	Lane                 string             `json:"lane,omitempty"`
	Guards               domain.Guards      `json:"actions"`
	AllowedTransitions   []string           `json:"allowedTransitions"`
}

// BoardResponse buckets views per lane, board order preserved.
type BoardResponse struct {
	Lanes map[string][]ApplicationView `json:"lanes"`
	Order []string                     `json:"order"`
}

type MemberOptionView struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type ConvertToLeaseResponse struct {
	LeaseID       string `json:"leaseId"`
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
}
