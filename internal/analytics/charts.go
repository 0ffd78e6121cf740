package analytics

import (
	"sort"
	"strconv"

	"healthdash/internal/dataset"
)

// histogramBins is the fixed bin count used by both histogram figures.
const histogramBins = 10

// Charts builds the dashboard figures from the immutable record table.
type Charts struct {
	table *dataset.Table
}

// NewCharts wraps the loaded table. The table must not change afterwards.
func NewCharts(t *dataset.Table) *Charts {
	return &Charts{table: t}
}

// AgeDistribution builds a 10-bin age histogram with one series per gender
// present in the filtered rows. An empty gender selection means no filter.
//
// A filter that matches nothing yields the zero Figure, not a labeled
// empty chart.
func (c *Charts) AgeDistribution(gender string) Figure {
	rows := filterGender(c.table.Records(), gender)
	if len(rows) == 0 {
		return Figure{}
	}

	ages := make([]float64, len(rows))
	for i, r := range rows {
		ages[i] = float64(r.Age)
	}
	lo, hi := bounds(ages)
	labels := binLabels(lo, hi)

	genders := distinctInOrder(rows, func(r dataset.Record) string { return r.Gender })
	series := make([]Series, 0, len(genders))
	for _, g := range genders {
		counts := make([]int, histogramBins)
		for _, r := range rows {
			if r.Gender == g {
				counts[binIndex(float64(r.Age), lo, hi)]++
			}
		}
		series = append(series, Series{Name: g, Data: binPoints(labels, counts)})
	}

	return Figure{
		Kind:   "histogram",
		Title:  "Age Distribution by Gender",
		XLabel: "Age",
		YLabel: "Count",
		Series: series,
		Colors: assignColors(defaultColors, len(series)),
	}
}

// ConditionBreakdown builds a pie figure of row counts per medical
// condition. An empty filtered view yields a pie with no slices.
func (c *Charts) ConditionBreakdown(gender string) Figure {
	rows := filterGender(c.table.Records(), gender)

	fig := Figure{
		Kind:  "pie",
		Title: "Medical Condition Distribution",
	}

	conditions := distinctInOrder(rows, func(r dataset.Record) string { return r.Condition })
	if len(conditions) == 0 {
		return fig
	}

	counts := make(map[string]int, len(conditions))
	for _, r := range rows {
		counts[r.Condition]++
	}
	points := make([]Point, 0, len(conditions))
	for _, cond := range conditions {
		points = append(points, Point{Label: cond, Value: float64(counts[cond])})
	}

	fig.Series = []Series{{Name: "Medical Condition", Data: points}}
	fig.Colors = assignColors(defaultColors, len(points))
	return fig
}

// InsuranceComparison builds a grouped bar figure: one group per insurance
// provider, one series per medical condition, bar height = summed billing.
// Rows with an unknown billing amount contribute nothing to the sums.
func (c *Charts) InsuranceComparison(gender string) Figure {
	rows := filterGender(c.table.Records(), gender)

	providers := distinctInOrder(rows, func(r dataset.Record) string { return r.Provider })
	conditions := distinctInOrder(rows, func(r dataset.Record) string { return r.Condition })

	sums := make(map[string]map[string]float64, len(conditions))
	for _, r := range rows {
		if !r.BillingKnown {
			continue
		}
		if sums[r.Condition] == nil {
			sums[r.Condition] = make(map[string]float64, len(providers))
		}
		sums[r.Condition][r.Provider] += r.Billing
	}

	series := make([]Series, 0, len(conditions))
	for i, cond := range conditions {
		points := make([]Point, 0, len(providers))
		for _, prov := range providers {
			points = append(points, Point{Label: prov, Value: round2(sums[cond][prov])})
		}
		series = append(series, Series{
			Name:  cond,
			Data:  points,
			Color: set2[i%len(set2)],
		})
	}

	return Figure{
		Kind:   "grouped_bar",
		Title:  "Insurance Provider Price Comparison",
		XLabel: "Insurance Provider",
		YLabel: "Billing Amount",
		Series: series,
		Colors: assignColors(set2, len(series)),
	}
}

// BillingDistribution builds a 10-bin histogram of billing amounts at or
// below the ceiling. Rows with an unknown amount never pass the ceiling.
//
// When the filters leave nothing, the result is the labeled-empty figure:
// title and axis labels present, no series. This is intentionally distinct
// from the zero Figure the age histogram produces.
func (c *Charts) BillingDistribution(gender string, ceiling float64) Figure {
	rows := filterGender(c.table.Records(), gender)

	var values []float64
	for _, r := range rows {
		if r.BillingKnown && r.Billing <= ceiling {
			values = append(values, r.Billing)
		}
	}

	fig := Figure{
		Kind:   "histogram",
		Title:  "Billing Amount Distribution",
		XLabel: "Billing Amount",
		YLabel: "Count",
	}
	if len(values) == 0 {
		return fig
	}

	lo, hi := bounds(values)
	counts := make([]int, histogramBins)
	for _, v := range values {
		counts[binIndex(v, lo, hi)]++
	}

	fig.Series = []Series{{Name: "Billing Amount", Data: binPoints(binLabels(lo, hi), counts)}}
	fig.Colors = assignColors(defaultColors, 1)
	return fig
}

// AdmissionTrends counts admissions per year-month bucket, sorted by
// period. Kind "line" selects a line figure; anything else falls back to
// bar. An empty condition selection means no filter.
func (c *Charts) AdmissionTrends(kind, condition string) Figure {
	if kind != "line" {
		kind = "bar"
	}
	rows := filterCondition(c.table.Records(), condition)

	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.YearMonth]++
	}
	periods := make([]string, 0, len(counts))
	for p := range counts {
		periods = append(periods, p)
	}
	sort.Strings(periods) // "2006-01" keys sort chronologically

	points := make([]Point, 0, len(periods))
	for _, p := range periods {
		points = append(points, Point{Label: p, Value: float64(counts[p])})
	}

	fig := Figure{
		Kind:   kind,
		Title:  "Admission Trends Over Time",
		XLabel: "Year-Month",
		YLabel: "Count",
	}
	if len(points) == 0 {
		return fig
	}
	fig.Series = []Series{{Name: "Admissions", Data: points}}
	fig.Colors = assignColors(defaultColors, 1)
	return fig
}

// bounds returns the min and max of values; values must be non-empty.
// A degenerate range is widened so all values land in the first bin.
func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// binIndex maps a value into one of the fixed-width bins over [lo, hi].
// The max value lands in the last bin rather than past it.
func binIndex(v, lo, hi float64) int {
	i := int((v - lo) / (hi - lo) * histogramBins)
	if i >= histogramBins {
		i = histogramBins - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func binLabels(lo, hi float64) []string {
	width := (hi - lo) / histogramBins
	labels := make([]string, histogramBins)
	for i := range labels {
		l := lo + float64(i)*width
		r := l + width
		labels[i] = formatBound(l) + "-" + formatBound(r)
	}
	return labels
}

func formatBound(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

func binPoints(labels []string, counts []int) []Point {
	points := make([]Point, len(labels))
	for i, label := range labels {
		points[i] = Point{Label: label, Value: float64(counts[i])}
	}
	return points
}
