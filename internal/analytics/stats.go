package analytics

import (
	"sort"

	"healthdash/internal/dataset"
)

// Summary holds the two headline aggregates shown above the charts.
type Summary struct {
	Records        int     `json:"records"`
	AverageBilling float64 `json:"averageBilling"`
}

// Summarize computes the record count and the mean billing amount.
// Rows with an unknown billing amount count toward Records but are
// ignored by the mean.
func Summarize(t *dataset.Table) Summary {
	s := Summary{Records: t.Len()}
	var sum float64
	var n int
	for _, r := range t.Records() {
		if r.BillingKnown {
			sum += r.Billing
			n++
		}
	}
	if n > 0 {
		s.AverageBilling = round2(sum / float64(n))
	}
	return s
}

// SliderConfig calibrates the billing-ceiling slider: bounds from the data,
// default at the median, tick marks at the quartile boundaries.
type SliderConfig struct {
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Default float64   `json:"default"`
	Marks   []float64 `json:"marks"`
}

// BillingSlider derives the slider calibration from the known billing
// amounts. A table with no known amounts yields the zero config.
func BillingSlider(t *dataset.Table) SliderConfig {
	values := knownBillings(t.Records())
	if len(values) == 0 {
		return SliderConfig{}
	}
	sort.Float64s(values)

	cfg := SliderConfig{
		Min:     values[0],
		Max:     values[len(values)-1],
		Default: quantile(values, 0.5),
	}
	for _, q := range []float64{0, 0.25, 0.5, 0.75, 1} {
		m := quantile(values, q)
		if n := len(cfg.Marks); n == 0 || cfg.Marks[n-1] != m {
			cfg.Marks = append(cfg.Marks, m)
		}
	}
	return cfg
}

// quantile computes the q-th quantile of sorted values with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func knownBillings(rows []dataset.Record) []float64 {
	var out []float64
	for _, r := range rows {
		if r.BillingKnown {
			out = append(out, r.Billing)
		}
	}
	return out
}
