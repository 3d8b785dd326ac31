package charts

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"launchdash.dev/internal/models"
)

func samplePie() models.Figure {
	return models.Figure{
		ID:    models.SitePieChartID,
		Kind:  models.FigurePie,
		Title: "Success vs. Failure for KSC LC-39A",
		Slices: []models.PieSlice{
			{Label: "Success", Value: 10},
			{Label: "Failure", Value: 3},
		},
	}
}

func sampleScatter() models.Figure {
	return models.Figure{
		ID:     models.PayloadScatterChartID,
		Kind:   models.FigureScatter,
		Title:  "Success by Payload for All Sites",
		XLabel: "Payload Mass (kg)",
		YLabel: "Launch Outcome",
		Series: []models.ScatterSeries{
			{Name: "FT", Points: []models.ScatterPoint{{X: 2490, Y: 1, Label: "F9 FT B1031.1"}, {X: 5600, Y: 0, Label: "F9 FT B1032.1"}}},
			{Name: "B4", Points: []models.ScatterPoint{{X: 3600, Y: 1, Label: "F9 B4 B1039.1"}}},
		},
	}
}

// optionJSON round-trips the option through JSON so assertions see plain values.
func optionJSON(t *testing.T, fig models.Figure) map[string]interface{} {
	t.Helper()

	option, err := EChartsOption(fig)
	require.NoError(t, err)

	raw, err := json.Marshal(option)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestEChartsOptionPie(t *testing.T) {
	option := optionJSON(t, samplePie())

	title := option["title"].(map[string]interface{})
	assert.Equal(t, "Success vs. Failure for KSC LC-39A", title["text"])

	series := option["series"].([]interface{})
	require.Len(t, series, 1)
	first := series[0].(map[string]interface{})
	assert.Equal(t, "pie", first["type"])

	data := first["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Success", data[0].(map[string]interface{})["name"])
	assert.Equal(t, float64(10), data[0].(map[string]interface{})["value"])
	assert.Equal(t, "Failure", data[1].(map[string]interface{})["name"])
}

func TestEChartsOptionScatter(t *testing.T) {
	option := optionJSON(t, sampleScatter())

	series := option["series"].([]interface{})
	require.Len(t, series, 2)

	ft := series[0].(map[string]interface{})
	assert.Equal(t, "scatter", ft["type"])
	assert.Equal(t, "FT", ft["name"])
	points := ft["data"].([]interface{})
	require.Len(t, points, 2)
	assert.Equal(t, []interface{}{float64(2490), float64(1)}, points[0].(map[string]interface{})["value"])

	assert.Contains(t, option, "xAxis")
	assert.Contains(t, option, "yAxis")
}

func TestEChartsOptionUnsupportedKind(t *testing.T) {
	_, err := EChartsOption(models.Figure{ID: "map", Kind: "choropleth"})
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage(&buf, "SpaceX Launch Records Dashboard", "", samplePie(), sampleScatter())
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>SpaceX Launch Records Dashboard</title>")
	assert.Contains(t, html, DefaultAssetsHost)
	assert.Contains(t, html, "site_specific_pie_chart")
	assert.Contains(t, html, "success_payload_scatter_chart")
}

func TestRenderPageCustomAssetsHost(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, "snapshot", "http://assets.local/", samplePie()))
	assert.Contains(t, buf.String(), "http://assets.local/echarts.min.js")
}

func TestRenderSVG(t *testing.T) {
	tests := []struct {
		name     string
		figure   models.Figure
		contains []string
	}{
		{name: "pie", figure: samplePie(), contains: []string{"Success", "Failure"}},
		{name: "scatter", figure: sampleScatter(), contains: []string{"FT", "B4"}},
		{
			name: "single point",
			figure: models.Figure{
				ID:     models.PayloadScatterChartID,
				Kind:   models.FigureScatter,
				Series: []models.ScatterSeries{{Name: "B5", Points: []models.ScatterPoint{{X: 3681, Y: 1}}}},
			},
			contains: []string{"B5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderSVG(&buf, tt.figure))

			svg := buf.String()
			assert.Contains(t, svg, "<svg")
			for _, s := range tt.contains {
				assert.Contains(t, svg, s)
			}
		})
	}
}

func TestRenderSVGEmptyFigure(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSVG(&buf, models.Figure{ID: models.SitePieChartID, Kind: models.FigurePie})
	assert.ErrorIs(t, err, ErrEmptyFigure)
	assert.Zero(t, buf.Len())
}
