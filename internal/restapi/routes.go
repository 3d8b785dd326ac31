package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// rateLimitAndValidateAPIKey applies the rate limiter before the key check so that
// rejected keys still count against the caller.
func rateLimitAndValidateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	handler := validateAPIKey(api, finalHandler)
	if api.rateLimiter == nil {
		return handler
	}
	return api.rateLimiter(handler)
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/current-time.json", rateLimitAndValidateAPIKey(api, api.currentTimeHandler))
	router.Handler(http.MethodGet, "/api/layout.json", rateLimitAndValidateAPIKey(api, api.layoutHandler))
	router.Handler(http.MethodGet, "/api/sites.json", rateLimitAndValidateAPIKey(api, api.sitesHandler))
	router.Handler(http.MethodGet, "/api/charts/:chart", rateLimitAndValidateAPIKey(api, api.chartHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}
