package stats

import (
	"wastetracker/internal/model"
)

// ChartKind selects one of the predefined chart series.
type ChartKind string

const (
	DailyChart    ChartKind = "daily"
	CategoryChart ChartKind = "category"
	MonthlyChart  ChartKind = "monthly"
)

// Point is a single labelled value of a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is a series ready for plotting. Points are ordered by label.
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Points []Point   `json:"points"`
}

type chartSpec struct {
	title, emptyTitle, xLabel string
	key                       func(model.WasteEntry) string
}

var chartSpecs = map[ChartKind]chartSpec{
	DailyChart: {
		title:      "Daily Food Waste (kg)",
		emptyTitle: "No data available for daily trend",
		xLabel:     "Date",
		key:        func(e model.WasteEntry) string { return e.Date.String() },
	},
	CategoryChart: {
		title:      "Waste by Category (kg)",
		emptyTitle: "No data available for category trend",
		xLabel:     "Category",
		key:        func(e model.WasteEntry) string { return e.Category },
	},
	MonthlyChart: {
		title:      "Monthly Food Waste Trend (kg)",
		emptyTitle: "No data available for monthly trend",
		xLabel:     "Month",
		key:        func(e model.WasteEntry) string { return e.Date.Format("2006-01") },
	},
}

// ParseChartKind reports whether s names a known chart.
func ParseChartKind(s string) (ChartKind, bool) {
	k := ChartKind(s)
	_, ok := chartSpecs[k]
	return k, ok
}

// BuildChart groups entries by the chart's key and sums kilograms per group.
func BuildChart(kind ChartKind, entries []model.WasteEntry) (Chart, bool) {
	spec, ok := chartSpecs[kind]
	if !ok {
		return Chart{}, false
	}
	c := Chart{
		Kind:   kind,
		Title:  spec.title,
		XLabel: spec.xLabel,
		YLabel: "Kg Wasted",
		Points: []Point{},
	}
	if len(entries) == 0 {
		c.Title = spec.emptyTitle
		return c, true
	}

	sums := map[string]float64{}
	for _, e := range entries {
		sums[spec.key(e)] += e.QuantityKg
	}
	for _, k := range sortedKeys(sums) {
		c.Points = append(c.Points, Point{Label: k, Value: sums[k]})
	}
	return c, true
}
