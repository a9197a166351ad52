package domain

import "testing"

func TestQualificationDisplay(t *testing.T) {
	cases := []struct {
		raw      string
		wantBand string
		wantTone string
	}{
		{"strong", BandStrong, ToneSuccess},
		{" Moderate ", BandModerate, ToneInfo},
		{"WATCH", BandWatch, ToneWarning},
		{"", BandUnscored, ToneNeutral},
		{"platinum", BandUnscored, ToneNeutral},
	}

	for _, tc := range cases {
		got := QualificationDisplay(tc.raw)
		if got.Band != tc.wantBand || got.Tone != tc.wantTone {
			t.Errorf("QualificationDisplay(%q) = %+v, want band %q tone %q", tc.raw, got, tc.wantBand, tc.wantTone)
		}
	}

	if QualificationDisplay("").Label != "Sin puntuar" {
		t.Errorf("unscored label = %q, want Sin puntuar", QualificationDisplay("").Label)
	}
}

func TestBandForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, BandStrong},
		{75, BandStrong},
		{74.9, BandModerate},
		{50, BandModerate},
		{49, BandWatch},
		{0, BandWatch},
	}

	for _, tc := range cases {
		if got := BandForScore(tc.score); got != tc.want {
			t.Errorf("BandForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestQualificationScore(t *testing.T) {
	ratio := func(v float64) *float64 { return &v }

	cases := []struct {
		name string
		row  ApplicationRow
		want float64
	}{
		{
			name: "complete strong applicant",
			row: ApplicationRow{
				Phone: "+595981000000", Email: "a@b.c", HasDocuments: true,
				HasGuarantor: true, IncomeToRentRatio: ratio(3.1),
				Status: StatusOfferSent,
			},
			// 8+6+10+16+40+12
			want: 92,
		},
		{
			name: "income only, no ratio",
			row:  ApplicationRow{MonthlyIncome: 3000000, Status: StatusNew},
			// 6 (no guarantor default) + 18
			want: 24,
		},
		{
			name: "lost application loses points",
			row:  ApplicationRow{Phone: "x", Status: StatusLost},
			// 8+6-8
			want: 6,
		},
		{
			name: "clamped at zero",
			row:  ApplicationRow{Status: StatusRejected},
			// 6-8 clamps to 0
			want: 0,
		},
		{
			name: "thin ratio bracket",
			row:  ApplicationRow{IncomeToRentRatio: ratio(1.2)},
			// 6+10
			want: 16,
		},
	}

	for _, tc := range cases {
		if got := QualificationScore(tc.row); got != tc.want {
			t.Errorf("%s: QualificationScore = %v, want %v", tc.name, got, tc.want)
		}
	}
}
