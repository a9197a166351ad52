package domain

import (
	"sort"
	"time"
)

// ResponseSLATargetMinutes is the first-response target for a new application.
const ResponseSLATargetMinutes = 120

// SLA classification results.
const (
	SLAPending  = "pending"
	SLAMet      = "met"
	SLABreached = "breached"
)

// Alert levels carried on rows by the core backend.
const (
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Display tones for badges.
const (
	ToneDanger  = "danger"
	ToneWarning = "warning"
	ToneSuccess = "success"
	ToneInfo    = "info"
	ToneNeutral = "neutral"
)

// ClassifySLA derives the tri-state SLA verdict for a row. The backend's own
// classification wins when present; response-time inference is next; the
// wall-clock deadline is the last resort. An unparsable created_at yields
// pending because no truthful verdict can be computed.
func ClassifySLA(row ApplicationRow, now time.Time) string {
	switch CanonicalStatus(row.ResponseSLAStatus) {
	case SLAPending, SLAMet, SLABreached:
		return CanonicalStatus(row.ResponseSLAStatus)
	}

	if row.FirstResponseMinutes > 0 {
		if row.FirstResponseMinutes <= ResponseSLATargetMinutes {
			return SLAMet
		}
		return SLABreached
	}

	createdAt, err := parseTimestamp(row.CreatedAt)
	if err != nil {
		return SLAPending
	}
	dueAt := createdAt.Add(ResponseSLATargetMinutes * time.Minute)
	if now.After(dueAt) {
		return SLABreached
	}
	return SLAPending
}

// MinutesOverdue reports how far past the first-response target a row is.
// Rows that are not breached, or whose created_at cannot be parsed, yield 0.
func MinutesOverdue(row ApplicationRow, now time.Time) float64 {
	if row.FirstResponseMinutes > ResponseSLATargetMinutes {
		return row.FirstResponseMinutes - ResponseSLATargetMinutes
	}
	createdAt, err := parseTimestamp(row.CreatedAt)
	if err != nil {
		return 0
	}
	dueAt := createdAt.Add(ResponseSLATargetMinutes * time.Minute)
	if overdue := now.Sub(dueAt).Minutes(); overdue > 0 {
		return overdue
	}
	return 0
}

// SLATone maps an SLA verdict and raw alert level to a badge tone.
func SLATone(slaStatus, alertLevel string) string {
	level := CanonicalStatus(alertLevel)
	switch {
	case slaStatus == SLABreached || level == AlertCritical:
		return ToneDanger
	case level == AlertWarning:
		return ToneWarning
	case slaStatus == SLAMet:
		return ToneSuccess
	default:
		return ToneNeutral
	}
}

// IsAtRisk reports whether the row's alert level is warning or critical.
func IsAtRisk(row ApplicationRow) bool {
	level := CanonicalStatus(row.ResponseSLAAlert)
	return level == AlertWarning || level == AlertCritical
}

// SortAlerts orders rows for the alert list: breached or critical rows
// first, then warnings, ties broken by created_at descending.
func SortAlerts(rows []ApplicationRow, now time.Time) []ApplicationRow {
	sorted := append([]ApplicationRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := alertRank(sorted[i], now), alertRank(sorted[j], now)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

func alertRank(row ApplicationRow, now time.Time) int {
	level := CanonicalStatus(row.ResponseSLAAlert)
	if ClassifySLA(row, now) == SLABreached || level == AlertCritical {
		return 0
	}
	if level == AlertWarning {
		return 1
	}
	return 2
}

func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
