package restapi

import (
	"net/http"
	"time"

	"launchdash.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
	stopLimiter func()
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	limiter, stop := NewRateLimitMiddleware(app.Config.RateLimit, time.Second)
	return &RestAPI{
		Application: app,
		rateLimiter: limiter,
		stopLimiter: stop,
	}
}

// Close stops the rate limiter's background cleanup.
func (api *RestAPI) Close() {
	if api.stopLimiter != nil {
		api.stopLimiter()
	}
}
