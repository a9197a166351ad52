package domain

import "testing"

func TestNormalizeCoercesFieldTypes(t *testing.T) {
	row := Normalize(map[string]any{
		"id":                     "app-1",
		"full_name":              "  Ana López  ",
		"email":                  nil,
		"phone":                  "+595981000000",
		"status":                 "new",
		"monthly_income":         "4500000",
		"first_response_minutes": 42.0,
		"created_at":             "2026-08-30T12:00:00Z",
		"qualification_score":    88,
		"income_to_rent_ratio":   3.2,
		"has_guarantor":          true,
		"has_documents":          "true",
	})

	if row.ID != "app-1" {
		t.Errorf("ID = %q, want %q", row.ID, "app-1")
	}
	if row.FullName != "Ana López" {
		t.Errorf("FullName = %q, want trimmed name", row.FullName)
	}
	if row.Email != "" {
		t.Errorf("Email = %q, want empty for nil input", row.Email)
	}
	if row.MonthlyIncome != 4500000 {
		t.Errorf("MonthlyIncome = %v, want parsed 4500000", row.MonthlyIncome)
	}
	if row.FirstResponseMinutes != 42 {
		t.Errorf("FirstResponseMinutes = %v, want 42", row.FirstResponseMinutes)
	}
	if row.QualificationScore != 88 {
		t.Errorf("QualificationScore = %v, want 88", row.QualificationScore)
	}
	if row.IncomeToRentRatio == nil || *row.IncomeToRentRatio != 3.2 {
		t.Errorf("IncomeToRentRatio = %v, want 3.2", row.IncomeToRentRatio)
	}
	if !row.HasGuarantor {
		t.Error("HasGuarantor = false, want true for literal boolean")
	}
	if row.HasDocuments {
		t.Error(`HasDocuments = true, want false for string "true"`)
	}
}

func TestNormalizeDefaultsMalformedValues(t *testing.T) {
	row := Normalize(map[string]any{
		"monthly_income":         "not a number",
		"first_response_minutes": nil,
		"income_to_rent_ratio":   -1.5,
		"status":                 "",
	})

	if row.MonthlyIncome != 0 {
		t.Errorf("MonthlyIncome = %v, want 0 for unparsable input", row.MonthlyIncome)
	}
	if row.FirstResponseMinutes != 0 {
		t.Errorf("FirstResponseMinutes = %v, want 0", row.FirstResponseMinutes)
	}
	if row.IncomeToRentRatio != nil {
		t.Errorf("IncomeToRentRatio = %v, want nil for non-positive ratio", *row.IncomeToRentRatio)
	}
	if row.Status != "" {
		t.Errorf("Status = %q, want empty string retained", row.Status)
	}
}

func TestNormalizeAllSkipsNilRecords(t *testing.T) {
	rows := NormalizeAll([]map[string]any{
		{"id": "a"},
		nil,
		{"id": "b"},
	})
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].ID != "a" || rows[1].ID != "b" {
		t.Errorf("rows = %v, want ids a and b in order", rows)
	}
}
