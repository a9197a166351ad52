package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ApplicationRow is the typed form of one tenant application. Raw records
// from the core backend are untyped key-bags; Normalize is the only place
// where that untyped shape is allowed to exist.
type ApplicationRow struct {
	ID                   string
	FullName             string
	Email                string
	Phone                string
	Status               string
	ListingTitle         string
	MonthlyIncome        float64
	FirstResponseMinutes float64
	CreatedAt            string
	AssignedUserID       string
	AssignedUserName     string
	ResponseSLAStatus    string
	ResponseSLAAlert     string
	ResponseSLADueAt     string
	QualificationScore   float64
	QualificationBand    string
	IncomeToRentRatio    *float64
	HasGuarantor         bool
	HasDocuments         bool
}

// Normalize coerces an untyped record into an ApplicationRow. Malformed
// values degrade to zero values; nothing here ever fails.
func Normalize(record map[string]any) ApplicationRow {
	ratio := normalizeNumber(record["income_to_rent_ratio"])
	var ratioPtr *float64
	if ratio > 0 {
		ratioPtr = &ratio
	}

	return ApplicationRow{
		ID:                   normalizeString(record["id"]),
		FullName:             normalizeString(record["full_name"]),
		Email:                normalizeString(record["email"]),
		Phone:                normalizeString(record["phone"]),
		Status:               normalizeString(record["status"]),
		ListingTitle:         normalizeString(record["listing_title"]),
		MonthlyIncome:        normalizeNumber(record["monthly_income"]),
		FirstResponseMinutes: normalizeNumber(record["first_response_minutes"]),
		CreatedAt:            normalizeString(record["created_at"]),
		AssignedUserID:       normalizeString(record["assigned_user_id"]),
		AssignedUserName:     normalizeString(record["assigned_user_name"]),
		ResponseSLAStatus:    normalizeString(record["response_sla_status"]),
		ResponseSLAAlert:     normalizeString(record["response_sla_alert_level"]),
		ResponseSLADueAt:     normalizeString(record["response_sla_due_at"]),
		QualificationScore:   normalizeNumber(record["qualification_score"]),
		QualificationBand:    normalizeString(record["qualification_band"]),
		IncomeToRentRatio:    ratioPtr,
		HasGuarantor:         normalizeBool(record["has_guarantor"]),
		HasDocuments:         normalizeBool(record["has_documents"]),
	}
}

// NormalizeAll normalizes a slice of raw records, skipping nil entries.
func NormalizeAll(records []map[string]any) []ApplicationRow {
	rows := make([]ApplicationRow, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		rows = append(rows, Normalize(record))
	}
	return rows
}

// IsUnassigned reports whether no member owns the row.
func (r ApplicationRow) IsUnassigned() bool {
	return r.AssignedUserID == ""
}

func normalizeString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strings.TrimSpace(strconv.FormatFloat(typed, 'f', -1, 64))
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", typed))
	}
}

func normalizeNumber(value any) float64 {
	switch typed := value.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0
		}
		return typed
	case float32:
		return normalizeNumber(float64(typed))
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// normalizeBool accepts only the literal boolean true. Strings like "true"
// stay false; upstream payloads are expected to carry real booleans.
func normalizeBool(value any) bool {
	typed, ok := value.(bool)
	return ok && typed
}
