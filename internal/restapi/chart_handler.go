package restapi

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"launchdash.dev/internal/charts"
	"launchdash.dev/internal/dashboard"
	"launchdash.dev/internal/models"
	"launchdash.dev/internal/utils"
)

// chartOutputs maps the chart names used in URLs to dashboard output ids.
var chartOutputs = map[string]string{
	"all-sites-pie":   models.AllSitesPieChartID,
	"site-pie":        models.SitePieChartID,
	"payload-scatter": models.PayloadScatterChartID,
}

// chartState reads the site and payload bounds from the query. Missing bounds default
// to the dataset's payload range.
func (api *RestAPI) chartState(r *http.Request) (dashboard.State, map[string][]string) {
	query := r.URL.Query()
	site := query.Get("site")

	payload, fieldErrors := utils.ParsePayloadRange(query, api.LaunchManager.Dataset().PayloadBounds())
	if len(fieldErrors) > 0 {
		return dashboard.State{}, fieldErrors
	}

	if fieldErrors := utils.ValidateChartParams(site, payload.Low, payload.High); len(fieldErrors) > 0 {
		return dashboard.State{}, fieldErrors
	}

	if !api.KnownSite(site) {
		api.Logger.Debug("unknown site selected",
			slog.String("site", site),
			slog.String("component", "restapi"))
	}

	return dashboard.State{Site: site, Payload: payload}, nil
}

func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	name, format := utils.ExtractIDAndFormat(r, "chart")

	output, ok := chartOutputs[name]
	if !ok || (format != "json" && format != "svg") {
		api.sendNotFound(w, r)
		return
	}

	state, fieldErrors := api.chartState(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	fig, err := api.Dispatcher.Render(r.Context(), output, state)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if format == "svg" {
		var buf bytes.Buffer
		if err := charts.RenderSVG(&buf, fig); err != nil {
			if errors.Is(err, charts.ErrEmptyFigure) {
				api.sendNotFound(w, r)
				return
			}
			api.serverErrorResponse(w, r, err)
			return
		}
		api.sendSVG(w, buf.Bytes())
		return
	}

	option, err := charts.EChartsOption(fig)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.RenderedFigure{
		Output: output,
		Figure: fig,
		Option: option,
	}))
}
