package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"launchdash.dev/internal/models"
)

func TestBuildLayout(t *testing.T) {
	sites := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	layout := BuildLayout(sites, models.PayloadRange{Low: 0, High: 9600})

	assert.Equal(t, "SpaceX Launch Records Dashboard", layout.Title)

	assert.Equal(t, models.SiteDropdownID, layout.Dropdown.ID)
	assert.Equal(t, models.AllSites, layout.Dropdown.Value)
	assert.Equal(t, "Select a Launch Site here", layout.Dropdown.Placeholder)
	assert.True(t, layout.Dropdown.Searchable)
	assert.Len(t, layout.Dropdown.Options, 5)
	assert.Equal(t, models.DropdownOption{Label: "All Sites", Value: "ALL"}, layout.Dropdown.Options[0])
	for i, site := range sites {
		assert.Equal(t, models.DropdownOption{Label: site, Value: site}, layout.Dropdown.Options[i+1])
	}

	assert.Equal(t, models.PayloadSliderID, layout.Slider.ID)
	assert.Equal(t, float64(0), layout.Slider.Min)
	assert.Equal(t, float64(10000), layout.Slider.Max)
	assert.Equal(t, float64(1000), layout.Slider.Step)
	assert.Equal(t, []models.SliderMark{
		{Value: 0, Label: "0"},
		{Value: 2500, Label: "2500"},
		{Value: 5000, Label: "5000"},
		{Value: 7500, Label: "7500"},
		{Value: 10000, Label: "10000"},
	}, layout.Slider.Marks)
	assert.Equal(t, models.PayloadRange{Low: 0, High: 9600}, layout.Slider.Value)

	assert.Equal(t, []string{models.AllSitesPieChartID, models.SitePieChartID, models.PayloadScatterChartID}, layout.Graphs)

	state := InitialState(layout)
	assert.Equal(t, State{Site: models.AllSites, Payload: models.PayloadRange{Low: 0, High: 9600}}, state)
}

func TestBuildLayoutNoSites(t *testing.T) {
	layout := BuildLayout(nil, models.PayloadRange{})
	assert.Equal(t, []models.DropdownOption{{Label: "All Sites", Value: "ALL"}}, layout.Dropdown.Options)
}
