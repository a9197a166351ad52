package domain

import "testing"

func TestAssignLanesPartitionsKnownStatuses(t *testing.T) {
	rows := []ApplicationRow{
		{ID: "a", Status: StatusNew, CreatedAt: "2026-08-01T10:00:00Z"},
		{ID: "b", Status: "Screening", CreatedAt: "2026-08-02T10:00:00Z"},
		{ID: "c", Status: StatusQualified, CreatedAt: "2026-08-03T10:00:00Z"},
		{ID: "d", Status: StatusVisitScheduled, CreatedAt: "2026-08-04T10:00:00Z"},
		{ID: "e", Status: StatusOfferSent, CreatedAt: "2026-08-05T10:00:00Z"},
		{ID: "f", Status: StatusContractSigned, CreatedAt: "2026-08-06T10:00:00Z"},
		{ID: "g", Status: StatusRejected, CreatedAt: "2026-08-07T10:00:00Z"},
		{ID: "h", Status: StatusLost, CreatedAt: "2026-08-08T10:00:00Z"},
		{ID: "x", Status: "archived", CreatedAt: "2026-08-09T10:00:00Z"},
	}

	lanes := AssignLanes(rows)

	total := 0
	for _, lane := range LaneOrder {
		total += len(lanes[lane])
	}
	if total != 8 {
		t.Fatalf("placed %d rows across lanes, want 8 (unknown status excluded)", total)
	}

	if got := len(lanes[LaneIncoming]); got != 2 {
		t.Errorf("incoming lane has %d rows, want 2", got)
	}
	if got := len(lanes[LaneQualified]); got != 3 {
		t.Errorf("qualified lane has %d rows, want 3", got)
	}
	if got := len(lanes[LaneConverted]); got != 1 {
		t.Errorf("converted lane has %d rows, want 1", got)
	}
	if got := len(lanes[LaneClosed]); got != 2 {
		t.Errorf("closed lane has %d rows, want 2", got)
	}

	// Most recent first inside a lane.
	if lanes[LaneIncoming][0].ID != "b" {
		t.Errorf("incoming[0] = %q, want most recent row b", lanes[LaneIncoming][0].ID)
	}
	if lanes[LaneQualified][0].ID != "e" {
		t.Errorf("qualified[0] = %q, want most recent row e", lanes[LaneQualified][0].ID)
	}
}

func TestLaneForStatusUnknown(t *testing.T) {
	if lane := LaneForStatus("archived"); lane != "" {
		t.Errorf("LaneForStatus(archived) = %q, want empty", lane)
	}
	if lane := LaneForStatus(" OFFER_SENT "); lane != LaneQualified {
		t.Errorf("LaneForStatus(offer_sent) = %q, want %q", lane, LaneQualified)
	}
}
