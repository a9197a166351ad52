package domain

// Qualification bands.
const (
	BandStrong   = "strong"
	BandModerate = "moderate"
	BandWatch    = "watch"
	BandUnscored = "unscored"
)

// Score thresholds for banding a 0-100 qualification score.
const (
	qualificationStrongThreshold   = 75
	qualificationModerateThreshold = 50
)

// BandDisplay is the presentation of a qualification band.
type BandDisplay struct {
	Band  string `json:"band"`
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

var bandDisplays = map[string]BandDisplay{
	BandStrong:   {Band: BandStrong, Label: "Fuerte", Tone: ToneSuccess},
	BandModerate: {Band: BandModerate, Label: "Moderada", Tone: ToneInfo},
	BandWatch:    {Band: BandWatch, Label: "En observación", Tone: ToneWarning},
}

// unscoredDisplay carries both locales the admin UI renders.
var unscoredDisplay = BandDisplay{Band: BandUnscored, Label: "Sin puntuar", Tone: ToneNeutral}

// QualificationDisplay maps a raw band string to its label and tone.
// Unrecognized values render as unscored.
func QualificationDisplay(rawBand string) BandDisplay {
	if display, ok := bandDisplays[CanonicalStatus(rawBand)]; ok {
		return display
	}
	return unscoredDisplay
}

// BandForScore buckets a 0-100 score into a band.
func BandForScore(score float64) string {
	switch {
	case score >= qualificationStrongThreshold:
		return BandStrong
	case score >= qualificationModerateThreshold:
		return BandModerate
	default:
		return BandWatch
	}
}

// QualificationScore recomputes the 0-100 qualification score locally for
// rows the backend has not scored yet. Contact completeness, guarantee
// choice, affordability and pipeline position each contribute; the result
// is clamped to [0, 100].
func QualificationScore(row ApplicationRow) float64 {
	score := 0.0

	if row.Phone != "" {
		score += 8
	}
	if row.Email != "" {
		score += 6
	}
	if row.HasDocuments {
		score += 10
	}

	if row.HasGuarantor {
		score += 16
	} else {
		score += 6
	}

	switch {
	case row.IncomeToRentRatio != nil:
		ratio := *row.IncomeToRentRatio
		switch {
		case ratio >= 3:
			score += 40
		case ratio >= 2.5:
			score += 34
		case ratio >= 2:
			score += 28
		case ratio >= 1.5:
			score += 20
		default:
			score += 10
		}
	case row.MonthlyIncome > 0:
		score += 18
	}

	switch CanonicalStatus(row.Status) {
	case StatusQualified, StatusVisitScheduled, StatusOfferSent, StatusContractSigned:
		score += 12
	case StatusRejected, StatusLost:
		score -= 8
	}

	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
