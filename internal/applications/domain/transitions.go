package domain

// Transition guards compute which pipeline actions are eligible for a row.
// Several guards may be true at once; the board renders every applicable
// action. Guards only compute eligibility, the status mutation itself is a
// call against the core backend.

// CanMoveToScreening reports whether the row may enter screening.
func CanMoveToScreening(status string) bool {
	return CanonicalStatus(status) == StatusNew
}

// CanMoveToQualified reports whether the row may be marked qualified.
func CanMoveToQualified(status string) bool {
	switch CanonicalStatus(status) {
	case StatusScreening, StatusVisitScheduled:
		return true
	default:
		return false
	}
}

// CanConvert reports whether the row is eligible for lease conversion.
func CanConvert(status string) bool {
	switch CanonicalStatus(status) {
	case StatusQualified, StatusVisitScheduled, StatusOfferSent:
		return true
	default:
		return false
	}
}

// CanMarkLost reports whether the row may be abandoned. Any state that is
// neither convert-ready nor already converted can be marked lost; terminal
// states stay inert because CanTransition refuses them.
func CanMarkLost(status string) bool {
	canonical := CanonicalStatus(status)
	if canonical == StatusContractSigned || canonical == StatusRejected || canonical == StatusLost {
		return false
	}
	return !CanConvert(canonical)
}

// allowedTransitions is the authoritative server-side transition table used
// to validate mutations before they are forwarded upstream.
var allowedTransitions = map[string]map[string]struct{}{
	StatusNew: {
		StatusScreening: {}, StatusRejected: {}, StatusLost: {},
	},
	StatusScreening: {
		StatusQualified: {}, StatusVisitScheduled: {}, StatusRejected: {}, StatusLost: {},
	},
	StatusQualified: {
		StatusVisitScheduled: {}, StatusOfferSent: {}, StatusContractSigned: {}, StatusRejected: {}, StatusLost: {},
	},
	StatusVisitScheduled: {
		StatusOfferSent: {}, StatusQualified: {}, StatusRejected: {}, StatusLost: {},
	},
	StatusOfferSent: {
		StatusContractSigned: {}, StatusRejected: {}, StatusLost: {},
	},
	StatusContractSigned: {
		StatusLost: {},
	},
	StatusRejected: {},
	StatusLost:     {},
}

// CanTransition reports whether moving from current to next is legal.
// Re-asserting the current status is always allowed so idempotent retries
// do not fail.
func CanTransition(current, next string) bool {
	from := CanonicalStatus(current)
	to := CanonicalStatus(next)
	if from == to {
		return true
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// TransitionOptions lists the statuses reachable from current, in pipeline
// order, excluding the self-transition.
func TransitionOptions(current string) []string {
	targets, ok := allowedTransitions[CanonicalStatus(current)]
	if !ok {
		return nil
	}
	ordered := []string{
		StatusScreening, StatusQualified, StatusVisitScheduled,
		StatusOfferSent, StatusContractSigned, StatusRejected, StatusLost,
	}
	options := make([]string, 0, len(targets))
	for _, status := range ordered {
		if _, ok := targets[status]; ok {
			options = append(options, status)
		}
	}
	return options
}

// Guards bundles the eligibility flags rendered as row actions.
type Guards struct {
	CanMoveToScreening bool `json:"canMoveToScreening"`
	CanMoveToQualified bool `json:"canMoveToQualified"`
	CanConvert         bool `json:"canConvert"`
	CanMarkLost        bool `json:"canMarkLost"`
}

// GuardsFor evaluates every guard for a status.
func GuardsFor(status string) Guards {
	return Guards{
		CanMoveToScreening: CanMoveToScreening(status),
		CanMoveToQualified: CanMoveToQualified(status),
		CanConvert:         CanConvert(status),
		CanMarkLost:        CanMarkLost(status),
	}
}
