package models

type FigureKind string

const (
	FigurePie     FigureKind = "pie"
	FigureScatter FigureKind = "scatter"
)

// Figure is a chart description independent of any rendering library.
type Figure struct {
	ID     string          `json:"id"`
	Kind   FigureKind      `json:"kind"`
	Title  string          `json:"title"`
	XLabel string          `json:"xLabel,omitempty"`
	YLabel string          `json:"yLabel,omitempty"`
	Slices []PieSlice      `json:"slices,omitempty"`
	Series []ScatterSeries `json:"series,omitempty"`
}

type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterSeries groups the points drawn in one color.
type ScatterSeries struct {
	Name   string         `json:"name"`
	Points []ScatterPoint `json:"points"`
}

type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Total returns the sum of all slice values.
func (f Figure) Total() float64 {
	var total float64
	for _, s := range f.Slices {
		total += s.Value
	}
	return total
}

// PointCount returns the number of scatter points across all series.
func (f Figure) PointCount() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	return len(f.Slices) == 0 && f.PointCount() == 0
}

// RenderedFigure pairs a figure with the ECharts option that draws it.
type RenderedFigure struct {
	Output string                 `json:"output"`
	Figure Figure                 `json:"figure"`
	Option map[string]interface{} `json:"option,omitempty"`
}
