// Package stats aggregates waste entries into summaries and chart series.
package stats

import (
	"sort"
	"strings"
	"time"

	"wastetracker/internal/model"
	"wastetracker/internal/repository"
)

// NoCategory is reported as the most wasted category when there is no data.
const NoCategory = "None"

// Period names a reporting window.
type Period string

const (
	Last7Days  Period = "7days"
	Last30Days Period = "30days"
	ThisMonth  Period = "month"
	ThisYear   Period = "year"
	AllTime    Period = "all"
)

// ParsePeriod maps unknown or empty values to AllTime.
func ParsePeriod(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Last7Days, Last30Days, ThisMonth, ThisYear:
		return p
	default:
		return AllTime
	}
}

// Range converts the period into a date range relative to now's calendar day.
func (p Period) Range(now time.Time) repository.DateRange {
	today := model.NewDay(now).Time
	var from, to time.Time
	switch p {
	case Last7Days:
		from = today.AddDate(0, 0, -7)
		return repository.DateRange{From: &from}
	case Last30Days:
		from = today.AddDate(0, 0, -30)
		return repository.DateRange{From: &from}
	case ThisMonth:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	case ThisYear:
		from = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
	default:
		return repository.DateRange{}
	}
	return repository.DateRange{From: &from, To: &to}
}

// Summary is the aggregate view of a set of entries.
type Summary struct {
	TotalKg            float64            `json:"total_waste_kg"`
	AvgDailyKg         float64            `json:"avg_daily_waste_kg"`
	MostWastedCategory string             `json:"most_wasted_category"`
	ByCategory         map[string]float64 `json:"waste_by_category"`
	ByReason           map[string]float64 `json:"waste_by_reason"`
	Entries            int                `json:"entry_count"`
}

// Summarize totals entries. The daily average is the mean of per-day sums over
// days that have at least one entry.
func Summarize(entries []model.WasteEntry) Summary {
	s := Summary{
		MostWastedCategory: NoCategory,
		ByCategory:         map[string]float64{},
		ByReason:           map[string]float64{},
		Entries:            len(entries),
	}
	if len(entries) == 0 {
		return s
	}

	byDay := map[string]float64{}
	for _, e := range entries {
		s.TotalKg += e.QuantityKg
		s.ByCategory[e.Category] += e.QuantityKg
		s.ByReason[e.Reason] += e.QuantityKg
		byDay[e.Date.String()] += e.QuantityKg
	}
	s.AvgDailyKg = s.TotalKg / float64(len(byDay))
	s.MostWastedCategory = argmax(s.ByCategory)
	return s
}

// argmax returns the key with the largest value; ties go to the smallest key.
func argmax(m map[string]float64) string {
	best, bestVal := "", 0.0
	for _, k := range sortedKeys(m) {
		if best == "" || m[k] > bestVal {
			best, bestVal = k, m[k]
		}
	}
	return best
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
