package dashboard

import (
	"strconv"

	"launchdash.dev/internal/models"
)

const (
	DashboardTitle      = "SpaceX Launch Records Dashboard"
	DropdownPlaceholder = "Select a Launch Site here"
	SliderLabel         = "Payload range (Kg):"

	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000
)

var sliderMarks = []float64{0, 2500, 5000, 7500, 10000}

// BuildLayout describes the page: title, site dropdown, the two pie charts, the payload
// slider and the scatter chart. The slider starts at the dataset's payload bounds.
func BuildLayout(sites []string, bounds models.PayloadRange) models.Layout {
	options := make([]models.DropdownOption, 0, len(sites)+1)
	options = append(options, models.DropdownOption{Label: models.AllSitesLabel, Value: models.AllSites})
	for _, site := range sites {
		options = append(options, models.DropdownOption{Label: site, Value: site})
	}

	marks := make([]models.SliderMark, 0, len(sliderMarks))
	for _, v := range sliderMarks {
		marks = append(marks, models.SliderMark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}

	return models.Layout{
		Title: DashboardTitle,
		Dropdown: models.Dropdown{
			ID:          models.SiteDropdownID,
			Options:     options,
			Value:       models.AllSites,
			Placeholder: DropdownPlaceholder,
			Searchable:  true,
		},
		Slider: models.RangeSlider{
			ID:    models.PayloadSliderID,
			Label: SliderLabel,
			Min:   SliderMin,
			Max:   SliderMax,
			Step:  SliderStep,
			Marks: marks,
			Value: bounds,
		},
		Graphs: []string{
			models.AllSitesPieChartID,
			models.SitePieChartID,
			models.PayloadScatterChartID,
		},
	}
}

// InitialState is the control state the page opens with.
func InitialState(layout models.Layout) State {
	return State{
		Site:    layout.Dropdown.Value,
		Payload: layout.Slider.Value,
	}
}
