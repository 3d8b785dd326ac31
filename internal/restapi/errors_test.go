package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"launchdash.dev/internal/dashboard"
	"launchdash.dev/internal/models"
)

type failingSource struct{}

func (failingSource) Sites(context.Context) ([]string, error) {
	return nil, errors.New("store offline")
}

func (failingSource) SuccessCountsBySite(context.Context) ([]models.SiteCount, error) {
	return nil, errors.New("store offline")
}

func (failingSource) OutcomeCountsForSite(context.Context, string) ([]models.OutcomeCount, error) {
	return nil, errors.New("store offline")
}

func (failingSource) LaunchesInPayloadRange(context.Context, string, models.PayloadRange) ([]models.Launch, error) {
	return nil, errors.New("store offline")
}

func TestServerErrorResponse(t *testing.T) {
	api := createTestApi(t)
	api.Dispatcher = dashboard.NewDispatcher(failingSource{}, nil)

	for _, endpoint := range []string{
		"/api/sites.json?key=TEST",
		"/api/charts/all-sites-pie.json?key=TEST",
		"/api/charts/payload-scatter.svg?key=TEST",
	} {
		resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, endpoint)
		assert.Equal(t, http.StatusInternalServerError, model.Code, endpoint)
		assert.Equal(t, "internal server error", model.Text, endpoint)
	}
}

func TestSendNotFound(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/no-such-endpoint.json?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
	assert.Equal(t, 2, model.Version)
}

func TestValidationErrorResponse(t *testing.T) {
	api := createTestApi(t)

	rec := httptest.NewRecorder()
	api.validationErrorResponse(rec, httptest.NewRequest("GET", "/", nil), map[string][]string{
		"low": {`Invalid field value for field "low".`},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{`Invalid field value for field "low".`}, body.FieldErrors["low"])
}

func TestAuthenticationOnlyWhenKeysConfigured(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/layout.json")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	api.Config.ApiKeys = nil
	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/layout.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", model.Text)
}
