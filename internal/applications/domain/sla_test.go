package domain

import (
	"testing"
	"time"
)

func TestClassifySLA(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		row  ApplicationRow
		want string
	}{
		{
			name: "authoritative status wins over everything",
			row: ApplicationRow{
				ResponseSLAStatus:    " Met ",
				FirstResponseMinutes: 999,
				CreatedAt:            "2020-01-01T00:00:00Z",
			},
			want: SLAMet,
		},
		{
			name: "authoritative breached passes through",
			row:  ApplicationRow{ResponseSLAStatus: "breached"},
			want: SLABreached,
		},
		{
			name: "response within target",
			row:  ApplicationRow{FirstResponseMinutes: 120},
			want: SLAMet,
		},
		{
			name: "response over target",
			row:  ApplicationRow{FirstResponseMinutes: 121},
			want: SLABreached,
		},
		{
			name: "no response, deadline passed",
			row:  ApplicationRow{CreatedAt: now.Add(-180 * time.Minute).Format(time.RFC3339)},
			want: SLABreached,
		},
		{
			name: "no response, still within deadline",
			row:  ApplicationRow{CreatedAt: now.Add(-30 * time.Minute).Format(time.RFC3339)},
			want: SLAPending,
		},
		{
			name: "unparsable created_at is pending",
			row:  ApplicationRow{CreatedAt: "yesterday-ish"},
			want: SLAPending,
		},
		{
			name: "unrecognized raw status falls through to inference",
			row:  ApplicationRow{ResponseSLAStatus: "on-track", FirstResponseMinutes: 60},
			want: SLAMet,
		},
	}

	for _, tc := range cases {
		if got := ClassifySLA(tc.row, now); got != tc.want {
			t.Errorf("%s: ClassifySLA = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSLATone(t *testing.T) {
	cases := []struct {
		slaStatus  string
		alertLevel string
		want       string
	}{
		{SLABreached, "", ToneDanger},
		{SLAPending, "critical", ToneDanger},
		{SLAPending, "warning", ToneWarning},
		{SLAMet, "", ToneSuccess},
		{SLAPending, "", ToneNeutral},
		{SLAMet, "critical", ToneDanger},
	}

	for _, tc := range cases {
		if got := SLATone(tc.slaStatus, tc.alertLevel); got != tc.want {
			t.Errorf("SLATone(%q, %q) = %q, want %q", tc.slaStatus, tc.alertLevel, got, tc.want)
		}
	}
}

func TestSortAlertsOrdersCriticalFirst(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := []ApplicationRow{
		{ID: "warn-old", ResponseSLAAlert: "warning", FirstResponseMinutes: 60, CreatedAt: "2026-08-28T09:00:00Z"},
		{ID: "crit", ResponseSLAAlert: "critical", CreatedAt: "2026-08-27T09:00:00Z"},
		{ID: "warn-new", ResponseSLAAlert: "warning", FirstResponseMinutes: 90, CreatedAt: "2026-08-29T09:00:00Z"},
		{ID: "breached", ResponseSLAStatus: "breached", CreatedAt: "2026-08-26T09:00:00Z"},
	}

	sorted := SortAlerts(rows, now)

	wantOrder := []string{"crit", "breached", "warn-new", "warn-old"}
	for i, want := range wantOrder {
		if sorted[i].ID != want {
			t.Fatalf("position %d = %q, want %q (full order %v)", i, sorted[i].ID, want, ids(sorted))
		}
	}
}

func TestSortAlertsPromotesUnansweredOverdueWarnings(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := []ApplicationRow{
		{ID: "warn-answered", ResponseSLAAlert: "warning", FirstResponseMinutes: 45, CreatedAt: "2026-08-30T08:00:00Z"},
		{ID: "warn-silent", ResponseSLAAlert: "warning", CreatedAt: "2026-08-29T08:00:00Z"},
	}

	sorted := SortAlerts(rows, now)

	// A warning row with no response past the deadline is already breached
	// and outranks any answered warning.
	if sorted[0].ID != "warn-silent" {
		t.Fatalf("position 0 = %q, want %q (full order %v)", sorted[0].ID, "warn-silent", ids(sorted))
	}
}

func ids(rows []ApplicationRow) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.ID
	}
	return out
}
