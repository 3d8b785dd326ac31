package app

import "net/http"

func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

// IsInvalidAPIKey reports whether key fails authentication. With no keys configured
// every request is allowed.
func (app *Application) IsInvalidAPIKey(key string) bool {
	if !app.Config.AuthEnabled() {
		return false
	}

	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
