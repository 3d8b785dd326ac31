package webui

import (
	"bytes"
	"net/http"

	"launchdash.dev/internal/models"
)

type dashboardPage struct {
	Layout     models.Layout
	AssetsHost string
	APIKey     string
}

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	page := dashboardPage{
		Layout:     webUI.Layout,
		AssetsHost: webUI.assetsHost(),
		APIKey:     r.URL.Query().Get("key"),
	}

	var buf bytes.Buffer
	if err := webUI.templates.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
