package domain

import (
	"math"
	"sort"
	"time"
)

// trendDays is the window of the daily response-time trend.
const trendDays = 7

// TrendPoint is the median first-response time for one calendar day.
type TrendPoint struct {
	Date   string  `json:"date"`
	Median float64 `json:"median"`
}

// Summary is the reduction rendered as cards and charts above the board.
type Summary struct {
	Total                 int            `json:"total"`
	Unassigned            int            `json:"unassigned"`
	SLABreached           int            `json:"slaBreached"`
	SLAAtRisk             int            `json:"slaAtRisk"`
	MedianFirstResponse   float64        `json:"medianFirstResponse"`
	Funnel                map[string]int `json:"funnel"`
	ResponseTrend         []TrendPoint   `json:"responseTrend"`
	ConversionRatePercent float64        `json:"conversionRatePercent"`
}

// Aggregate recomputes the full summary over a row collection. The working
// sets are small (hundreds of rows), so nothing is incremental.
func Aggregate(rows []ApplicationRow, now time.Time) Summary {
	summary := Summary{
		Total:  len(rows),
		Funnel: make(map[string]int, len(LaneOrder)),
	}
	for _, lane := range LaneOrder {
		summary.Funnel[lane] = 0
	}

	responseTimes := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.IsUnassigned() {
			summary.Unassigned++
		}
		if ClassifySLA(row, now) == SLABreached {
			summary.SLABreached++
		}
		if IsAtRisk(row) {
			summary.SLAAtRisk++
		}
		if lane := LaneForStatus(row.Status); lane != "" {
			summary.Funnel[lane]++
		}
		if row.FirstResponseMinutes > 0 {
			responseTimes = append(responseTimes, row.FirstResponseMinutes)
		}
	}

	summary.MedianFirstResponse = Median(responseTimes)
	summary.ResponseTrend = ResponseTrend(rows, now)
	if summary.Total > 0 {
		summary.ConversionRatePercent = round2(float64(summary.Funnel[LaneConverted]) / float64(summary.Total) * 100)
	}
	return summary
}

// Median returns the median of values; the mean of the two middle elements
// for even lengths, 0 for empty input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ResponseTrend computes the per-day median first-response time for the last
// seven calendar days, today included, oldest day first. Days without
// qualifying rows report 0. Rows with no response yet are excluded from the
// median rather than counted as zero-minute responses.
func ResponseTrend(rows []ApplicationRow, now time.Time) []TrendPoint {
	byDay := make(map[string][]float64)
	for _, row := range rows {
		if row.FirstResponseMinutes <= 0 {
			continue
		}
		if len(row.CreatedAt) < len("2006-01-02") {
			continue
		}
		day := row.CreatedAt[:len("2006-01-02")]
		byDay[day] = append(byDay[day], row.FirstResponseMinutes)
	}

	trend := make([]TrendPoint, 0, trendDays)
	for offset := trendDays - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset).Format("2006-01-02")
		trend = append(trend, TrendPoint{Date: day, Median: Median(byDay[day])})
	}
	return trend
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
