package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"launchdash.dev/internal/models"
)

// DefaultAssetsHost serves echarts.min.js for rendered pages.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var ErrUnsupportedKind = errors.New("unsupported figure kind")

type optionChart interface {
	components.Charter
	JSON() map[string]interface{}
}

// EChartsOption converts a figure into the option object accepted by echarts.setOption.
func EChartsOption(fig models.Figure) (map[string]interface{}, error) {
	c, err := newChart(fig, DefaultAssetsHost)
	if err != nil {
		return nil, err
	}
	c.Validate()
	return c.JSON(), nil
}

// RenderPage writes a standalone HTML page holding every figure, loading echarts from
// assetsHost. An empty assetsHost uses DefaultAssetsHost.
func RenderPage(w io.Writer, title, assetsHost string, figures ...models.Figure) error {
	if assetsHost == "" {
		assetsHost = DefaultAssetsHost
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AssetsHost = assetsHost
	page.SetLayout(components.PageFlexLayout)

	for _, fig := range figures {
		c, err := newChart(fig, assetsHost)
		if err != nil {
			return err
		}
		page.AddCharts(c)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

func newChart(fig models.Figure, assetsHost string) (optionChart, error) {
	switch fig.Kind {
	case models.FigurePie:
		return newPie(fig, assetsHost), nil
	case models.FigureScatter:
		return newScatter(fig, assetsHost), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, fig.Kind)
	}
}

// Chart ids become javascript identifiers in rendered pages.
func initOpts(fig models.Figure, assetsHost string) opts.Initialization {
	return opts.Initialization{
		PageTitle:  fig.Title,
		ChartID:    strings.ReplaceAll(fig.ID, "-", "_"),
		AssetsHost: assetsHost,
		Width:      "100%",
		Height:     "450px",
	}
}

func newPie(fig models.Figure, assetsHost string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(fig, assetsHost)),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "vertical",
			Left:   "right",
			Top:    "middle",
		}),
	)

	data := make([]opts.PieData, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		data = append(data, opts.PieData{Name: s.Label, Value: s.Value})
	}

	pie.AddSeries(fig.Title, data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{d}%",
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: "65%",
		}),
	)
	return pie
}

func newScatter(fig models.Figure, assetsHost string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(fig, assetsHost)),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: fig.XLabel,
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: fig.YLabel,
			Type: "value",
			Min:  -0.5,
			Max:  1.5,
		}),
	)

	for _, s := range fig.Series {
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.ScatterData{
				Name:       p.Label,
				Value:      []float64{p.X, p.Y},
				SymbolSize: 10,
			})
		}
		scatter.AddSeries(s.Name, data)
	}
	return scatter
}
