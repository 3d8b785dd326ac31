package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDAndFormat(t *testing.T) {
	testCases := []struct {
		name       string
		id         string
		wantID     string
		wantFormat string
	}{
		{
			name:       "Basic ID",
			id:         "site-pie",
			wantID:     "site-pie",
			wantFormat: "",
		},
		{
			name:       "ID with JSON extension",
			id:         "all-sites-pie.json",
			wantID:     "all-sites-pie",
			wantFormat: "json",
		},
		{
			name:       "ID with SVG extension",
			id:         "payload-scatter.svg",
			wantID:     "payload-scatter",
			wantFormat: "svg",
		},
		{
			name:       "ID with multiple dots",
			id:         "payload.scatter.json",
			wantID:     "payload.scatter",
			wantFormat: "json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var id, format string
			router.HandlerFunc(http.MethodGet, "/api/charts/:chart", func(w http.ResponseWriter, r *http.Request) {
				id, format = ExtractIDAndFormat(r, "chart")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/charts/"+tc.id, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.wantID, id, "ExtractIDAndFormat should strip the extension")
			assert.Equal(t, tc.wantFormat, format)
		})
	}
}
