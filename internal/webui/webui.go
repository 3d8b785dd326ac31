package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gorilla/websocket"
	"launchdash.dev/internal/app"
	"launchdash.dev/internal/charts"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// WebUI serves the browser-facing dashboard: the page itself, its live-update socket,
// static snapshots and the debug dump.
type WebUI struct {
	*app.Application
	templates *template.Template
	upgrader  websocket.Upgrader
}

func New(application *app.Application) (*WebUI, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &WebUI{
		Application: application,
		templates:   templates,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}, nil
}

func (webUI *WebUI) assetsHost() string {
	if webUI.Config.AssetsHost == "" {
		return charts.DefaultAssetsHost
	}
	return webUI.Config.AssetsHost
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
