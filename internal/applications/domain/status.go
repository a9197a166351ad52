// Package domain provides core business rules for the applications bounded
// context: row normalization, SLA classification, qualification banding,
// transition guards, lane assignment and summary aggregation. Everything in
// this package is pure and free of I/O.
package domain

import "strings"

const (
	StatusNew            = "new"
	StatusScreening      = "screening"
	StatusQualified      = "qualified"
	StatusVisitScheduled = "visit_scheduled"
	StatusOfferSent      = "offer_sent"
	StatusContractSigned = "contract_signed"
	StatusRejected       = "rejected"
	StatusLost           = "lost"
)

var knownStatuses = map[string]struct{}{
	StatusNew:            {},
	StatusScreening:      {},
	StatusQualified:      {},
	StatusVisitScheduled: {},
	StatusOfferSent:      {},
	StatusContractSigned: {},
	StatusRejected:       {},
	StatusLost:           {},
}

// IsKnownStatus reports whether status is one of the eight pipeline statuses.
// Comparison is case-insensitive on the trimmed value.
func IsKnownStatus(status string) bool {
	_, ok := knownStatuses[CanonicalStatus(status)]
	return ok
}

// CanonicalStatus lower-cases and trims a raw status value.
func CanonicalStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// statusLabels are the admin-facing Spanish labels used in message
// interpolation and badges.
var statusLabels = map[string]string{
	StatusNew:            "Nueva",
	StatusScreening:      "En revisión",
	StatusQualified:      "Calificada",
	StatusVisitScheduled: "Visita agendada",
	StatusOfferSent:      "Oferta enviada",
	StatusContractSigned: "Contrato firmado",
	StatusRejected:       "Rechazada",
	StatusLost:           "Perdida",
}

// StatusLabel returns the human label for a status. Unknown statuses fall
// back to the raw value so the UI never shows an empty badge.
func StatusLabel(status string) string {
	if label, ok := statusLabels[CanonicalStatus(status)]; ok {
		return label
	}
	return status
}
