package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	var buf bytes.Buffer
	err := webUI.templates.ExecuteTemplate(&buf, "debug_index.html", debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write(buf.Bytes())
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	dataset := webUI.LaunchManager.Dataset()

	switch dataType {
	case "launches":
		data = dataset.Launches()
		title = "Launch Data - Launches"
	case "sites":
		data = dataset.SiteNames()
		title = "Launch Data - Sites"
	case "statistics":
		stats, err := webUI.LaunchManager.Statistics(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = stats
		title = "Launch Data - Statistics"
	case "layout":
		data = webUI.Layout
		title = "Dashboard - Layout"
	case "figures":
		updates, err := webUI.Dispatcher.Dispatch(r.Context(), webUI.InitialState(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = updates
		title = "Dashboard - Initial Figures"
	default:
		data = map[string]string{
			"error": "Please use one of the following: launches, sites, statistics, layout, figures.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
