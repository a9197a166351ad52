package domain

import "sort"

// Board lanes.
const (
	LaneIncoming  = "incoming"
	LaneQualified = "qualified"
	LaneConverted = "converted"
	LaneClosed    = "closed"
)

// LaneOrder is the left-to-right board ordering.
var LaneOrder = []string{LaneIncoming, LaneQualified, LaneConverted, LaneClosed}

// statusLanes partitions the eight known statuses into four lanes. Rows
// with an unknown status land in no lane; they still appear in the flat
// list view.
var statusLanes = map[string]string{
	StatusNew:            LaneIncoming,
	StatusScreening:      LaneIncoming,
	StatusQualified:      LaneQualified,
	StatusVisitScheduled: LaneQualified,
	StatusOfferSent:      LaneQualified,
	StatusContractSigned: LaneConverted,
	StatusRejected:       LaneClosed,
	StatusLost:           LaneClosed,
}

// LaneForStatus returns the lane for a status, or "" when the status is not
// one of the eight known values.
func LaneForStatus(status string) string {
	return statusLanes[CanonicalStatus(status)]
}

// AssignLanes buckets rows into the four lanes. Within a lane rows are
// sorted by created_at descending; timestamps are compared as strings,
// which is correct for RFC 3339 values sharing one offset.
func AssignLanes(rows []ApplicationRow) map[string][]ApplicationRow {
	lanes := make(map[string][]ApplicationRow, len(LaneOrder))
	for _, lane := range LaneOrder {
		lanes[lane] = []ApplicationRow{}
	}

	for _, row := range rows {
		lane := LaneForStatus(row.Status)
		if lane == "" {
			continue
		}
		lanes[lane] = append(lanes[lane], row)
	}

	for lane := range lanes {
		sort.SliceStable(lanes[lane], func(i, j int) bool {
			return lanes[lane][i].CreatedAt > lanes[lane][j].CreatedAt
		})
	}
	return lanes
}
