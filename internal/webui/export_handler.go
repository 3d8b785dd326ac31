package webui

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"launchdash.dev/internal/charts"
	"launchdash.dev/internal/dashboard"
	"launchdash.dev/internal/models"
	"launchdash.dev/internal/utils"
)

// exportHandler renders every chart for the query's state into one standalone page.
func (webUI *WebUI) exportHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	site := query.Get("site")

	payload, fieldErrors := utils.ParsePayloadRange(query, webUI.Layout.Slider.Value)
	if len(fieldErrors) == 0 {
		fieldErrors = utils.ValidateChartParams(site, payload.Low, payload.High)
	}
	if len(fieldErrors) > 0 {
		http.Error(w, formatFieldErrors(fieldErrors), http.StatusBadRequest)
		return
	}

	if !webUI.KnownSite(site) {
		webUI.Logger.Debug("unknown site selected",
			slog.String("site", site),
			slog.String("component", "webui"))
	}

	updates, err := webUI.Dispatcher.Dispatch(r.Context(), dashboard.State{Site: site, Payload: payload}, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	figures := make([]models.Figure, 0, len(updates))
	for _, update := range updates {
		figures = append(figures, update.Figure)
	}

	var buf bytes.Buffer
	if err := charts.RenderPage(&buf, dashboard.DashboardTitle, webUI.assetsHost(), figures...); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func formatFieldErrors(fieldErrors map[string][]string) string {
	var lines []string
	for _, field := range []string{"site", "low", "high"} {
		for _, msg := range fieldErrors[field] {
			lines = append(lines, field+": "+msg)
		}
	}
	return strings.Join(lines, "\n")
}
