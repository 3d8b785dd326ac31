package restapi

import (
	"net/http"

	"launchdash.dev/internal/models"
)

func (api *RestAPI) layoutHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(api.Layout))
}

func (api *RestAPI) sitesHandler(w http.ResponseWriter, r *http.Request) {
	sites, err := api.Dispatcher.Source().Sites(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(sites))
}
