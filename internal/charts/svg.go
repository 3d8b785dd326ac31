package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"launchdash.dev/internal/models"
)

const (
	svgWidth  = 800
	svgHeight = 450
)

var ErrEmptyFigure = errors.New("figure has nothing to draw")

// RenderSVG draws a static rendition of fig.
func RenderSVG(w io.Writer, fig models.Figure) error {
	if fig.Empty() {
		return ErrEmptyFigure
	}

	var err error
	switch fig.Kind {
	case models.FigurePie:
		err = pieSVG(fig).Render(chart.SVG, w)
	case models.FigureScatter:
		err = scatterSVG(fig).Render(chart.SVG, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, fig.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", fig.ID, err)
	}
	return nil
}

func pieSVG(fig models.Figure) chart.PieChart {
	values := make([]chart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		values = append(values, chart.Value{Value: s.Value, Label: s.Label})
	}
	return chart.PieChart{
		Title:  fig.Title,
		Width:  svgWidth,
		Height: svgHeight,
		Values: values,
	}
}

func scatterSVG(fig models.Figure) *chart.Chart {
	lowX, highX := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(fig.Series))

	for i, s := range fig.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			lowX = math.Min(lowX, p.X)
			highX = math.Max(highX, p.X)
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    chart.GetDefaultColor(i),
			},
		})
	}

	// A single payload value would collapse the x range.
	if lowX == highX {
		lowX, highX = lowX-500, highX+500
	}

	ch := &chart.Chart{
		Title:  fig.Title,
		Width:  svgWidth,
		Height: svgHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  fig.XLabel,
			Range: &chart.ContinuousRange{Min: lowX, Max: highX},
		},
		YAxis: chart.YAxis{
			Name:  fig.YLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: 1.5},
			Ticks: []chart.Tick{
				{Value: -0.5, Label: ""},
				{Value: 0, Label: models.OutcomeLabel(models.OutcomeFailure)},
				{Value: 1, Label: models.OutcomeLabel(models.OutcomeSuccess)},
				{Value: 1.5, Label: ""},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}
