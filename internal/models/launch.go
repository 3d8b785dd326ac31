package models

// AllSites is the dropdown value that selects every launch site.
const AllSites = "ALL"

// AllSitesLabel is the dropdown label shown for AllSites.
const AllSitesLabel = "All Sites"

// Outcome classes as they appear in the dataset's class column.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// Launch is one row of the launch records dataset.
type Launch struct {
	FlightNumber           int     `json:"flightNumber"`
	LaunchSite             string  `json:"launchSite"`
	Class                  int     `json:"class"`
	PayloadMassKg          float64 `json:"payloadMassKg"`
	BoosterVersion         string  `json:"boosterVersion"`
	BoosterVersionCategory string  `json:"boosterVersionCategory"`
}

// Succeeded reports whether the launch outcome flag is set.
func (l Launch) Succeeded() bool {
	return l.Class == OutcomeSuccess
}

// SiteCount is a number of launches attributed to one site.
type SiteCount struct {
	Site  string `json:"site"`
	Count int    `json:"count"`
}

// OutcomeCount is a number of launches with a given outcome class.
type OutcomeCount struct {
	Class int `json:"class"`
	Count int `json:"count"`
}

// Label returns the human-readable outcome name.
func (o OutcomeCount) Label() string {
	return OutcomeLabel(o.Class)
}

// OutcomeLabel maps an outcome class to its display label.
func OutcomeLabel(class int) string {
	switch class {
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies within the range, bounds included.
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Low && mass <= r.High
}
