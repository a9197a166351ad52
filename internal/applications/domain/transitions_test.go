package domain

import "testing"

func TestGuardsFor(t *testing.T) {
	cases := []struct {
		status string
		want   Guards
	}{
		{StatusNew, Guards{CanMoveToScreening: true, CanMarkLost: true}},
		{StatusScreening, Guards{CanMoveToQualified: true, CanMarkLost: true}},
		{StatusQualified, Guards{CanConvert: true}},
		{StatusVisitScheduled, Guards{CanMoveToQualified: true, CanConvert: true}},
		{StatusOfferSent, Guards{CanConvert: true}},
		{StatusContractSigned, Guards{}},
		{StatusRejected, Guards{}},
		{StatusLost, Guards{}},
		{"  NEW  ", Guards{CanMoveToScreening: true, CanMarkLost: true}},
		{"mystery", Guards{CanMarkLost: true}},
	}

	for _, tc := range cases {
		if got := GuardsFor(tc.status); got != tc.want {
			t.Errorf("GuardsFor(%q) = %+v, want %+v", tc.status, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{StatusNew, StatusScreening, true},
		{StatusNew, StatusQualified, false},
		{StatusNew, StatusLost, true},
		{StatusScreening, StatusVisitScheduled, true},
		{StatusScreening, StatusOfferSent, false},
		{StatusQualified, StatusContractSigned, true},
		{StatusVisitScheduled, StatusQualified, true},
		{StatusOfferSent, StatusContractSigned, true},
		{StatusContractSigned, StatusLost, true},
		{StatusContractSigned, StatusOfferSent, false},
		{StatusRejected, StatusNew, false},
		{StatusLost, StatusScreening, false},
		{StatusQualified, StatusQualified, true},
		{"unknown", StatusLost, false},
		{"unknown", "unknown", true},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionOptionsOrdered(t *testing.T) {
	got := TransitionOptions(StatusScreening)
	want := []string{StatusQualified, StatusVisitScheduled, StatusRejected, StatusLost}
	if len(got) != len(want) {
		t.Fatalf("TransitionOptions(screening) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TransitionOptions(screening) = %v, want %v", got, want)
		}
	}

	if opts := TransitionOptions(StatusRejected); len(opts) != 0 {
		t.Errorf("TransitionOptions(rejected) = %v, want none", opts)
	}
}
