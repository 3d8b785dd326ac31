package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.dashboardHandler)
	router.HandlerFunc(http.MethodGet, "/ws", webUI.websocketHandler)
	router.HandlerFunc(http.MethodGet, "/export.html", webUI.exportHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	router.Handler(http.MethodGet, "/static/*filepath", staticHandler())
}
