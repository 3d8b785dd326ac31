package restapi

import (
	"fmt"
	"net/http"
	"net/url"
)

// WithSecurityHeaders wraps the given handler with security headers middleware
func (api *RestAPI) WithSecurityHeaders(handler http.Handler) http.Handler {
	return securityHeaders(api.Config.AssetsHost)(handler)
}

// contentSecurityPolicy lets pages load chart scripts from the asset host and open
// websockets back to this server.
func contentSecurityPolicy(assetsHost string) string {
	scriptSrc := "'self' 'unsafe-inline'"
	if u, err := url.Parse(assetsHost); err == nil && u.Scheme != "" && u.Host != "" {
		scriptSrc += fmt.Sprintf(" %s://%s", u.Scheme, u.Host)
	}

	return fmt.Sprintf("default-src 'self'; script-src %s; style-src 'self' 'unsafe-inline'; "+
		"img-src 'self' data:; connect-src 'self' ws: wss:; frame-ancestors 'none';", scriptSrc)
}

// securityHeaders adds essential security headers to all HTTP responses
func securityHeaders(assetsHost string) func(http.Handler) http.Handler {
	csp := contentSecurityPolicy(assetsHost)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", csp)

			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
