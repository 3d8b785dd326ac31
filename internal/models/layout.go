package models

// Component ids shared by the layout, the callback registry and the browser client.
const (
	SiteDropdownID        = "site-dropdown"
	PayloadSliderID       = "payload-slider"
	AllSitesPieChartID    = "all-sites-pie-chart"
	SitePieChartID        = "site-specific-pie-chart"
	PayloadScatterChartID = "success-payload-scatter-chart"
)

type Layout struct {
	Title    string      `json:"title"`
	Dropdown Dropdown    `json:"dropdown"`
	Slider   RangeSlider `json:"slider"`
	Graphs   []string    `json:"graphs"`
}

type DropdownOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Dropdown struct {
	ID          string           `json:"id"`
	Options     []DropdownOption `json:"options"`
	Value       string           `json:"value"`
	Placeholder string           `json:"placeholder"`
	Searchable  bool             `json:"searchable"`
}

type SliderMark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type RangeSlider struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Min   float64      `json:"min"`
	Max   float64      `json:"max"`
	Step  float64      `json:"step"`
	Marks []SliderMark `json:"marks"`
	Value PayloadRange `json:"value"`
}
