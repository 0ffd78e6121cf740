// Package analytics derives summary statistics and chart figures from the
// loaded record table.
//
// Every builder is a pure function of (control values, table): the table is
// injected at construction time and never mutated, so builders are safe to
// call from any number of requests without locking.
package analytics

import "math"

// Point is a single labeled value in a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one named data series in a figure.
type Series struct {
	Name  string  `json:"name"`
	Data  []Point `json:"data"`
	Color string  `json:"color,omitempty"`
}

// Figure is a render-ready chart specification. The front end maps Kind to
// a chart renderer; the backend never draws anything itself.
//
// Two empty representations exist and are deliberately distinct:
// the zero value (no kind, no labels — "no figure at all") and a figure
// carrying a title and axis labels but no series ("empty but labeled").
// Builders document which one they produce for empty input.
type Figure struct {
	Kind   string   `json:"kind,omitempty"` // "histogram", "pie", "grouped_bar", "bar", "line"
	Title  string   `json:"title,omitempty"`
	XLabel string   `json:"xLabel,omitempty"`
	YLabel string   `json:"yLabel,omitempty"`
	Series []Series `json:"series,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// IsZero reports whether the figure is the "no figure" representation.
func (f Figure) IsZero() bool {
	return f.Kind == "" && f.Title == "" && f.XLabel == "" && f.YLabel == "" &&
		len(f.Series) == 0 && len(f.Colors) == 0
}

// set2 is the fixed qualitative palette used by the insurance comparison.
var set2 = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
	"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3",
}

// defaultColors is the palette for the remaining charts.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func assignColors(palette []string, count int) []string {
	colors := make([]string, count)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
