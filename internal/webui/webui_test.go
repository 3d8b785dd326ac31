package webui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"launchdash.dev/internal/app"
	"launchdash.dev/internal/appconf"
	"launchdash.dev/internal/launches"
	"launchdash.dev/internal/models"
)

func createTestWebUI(t *testing.T, config appconf.Config) *WebUI {
	t.Helper()
	return createFixtureWebUI(t, config, models.LaunchFixture)
}

func createFixtureWebUI(t *testing.T, config appconf.Config, fixture string) *WebUI {
	t.Helper()

	launchConfig := launches.Config{
		Source:   models.GetFixturePath(t, fixture),
		DataPath: ":memory:",
		Env:      appconf.Test,
	}
	manager, err := launches.InitLaunchManager(context.Background(), launchConfig, nil)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	config.Env = appconf.Test
	application, err := app.New(config, launchConfig, nil, manager, app.StoreMemory, nil)
	require.NoError(t, err)

	webUI, err := New(application)
	require.NoError(t, err)
	return webUI
}

func newTestServer(t *testing.T, webUI *WebUI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	webUI.SetWebUIRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func getBody(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestDashboardPage(t *testing.T) {
	server := newTestServer(t, createTestWebUI(t, appconf.Config{}))

	resp, body := getBody(t, server.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	assert.Contains(t, body, "<title>SpaceX Launch Records Dashboard</title>")
	assert.Contains(t, body, `<option value="ALL" selected>All Sites</option>`)
	assert.Contains(t, body, `<option value="KSC LC-39A">KSC LC-39A</option>`)
	assert.Contains(t, body, `placeholder="Select a Launch Site here"`)
	assert.Contains(t, body, `min="0" max="10000" step="1000"`)
	assert.Contains(t, body, `value="9600"`)
	assert.Contains(t, body, `label="7500"`)
	assert.Contains(t, body, "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js")

	for _, id := range []string{models.AllSitesPieChartID, models.SitePieChartID, models.PayloadScatterChartID} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
}

func TestDashboardPageCustomAssetsHost(t *testing.T) {
	server := newTestServer(t, createTestWebUI(t, appconf.Config{AssetsHost: "http://assets.local/"}))

	_, body := getBody(t, server.URL+"/")
	assert.Contains(t, body, `src="http://assets.local/echarts.min.js"`)
}

func TestPagesRequireKeyWhenConfigured(t *testing.T) {
	server := newTestServer(t, createTestWebUI(t, appconf.Config{ApiKeys: []string{"TEST"}}))

	for _, path := range []string{"/", "/export.html", "/debug/?dataType=sites"} {
		t.Run(path, func(t *testing.T) {
			resp, _ := getBody(t, server.URL+path)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	resp, body := getBody(t, server.URL+"/?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-key="TEST"`)
}

func TestStaticAssets(t *testing.T) {
	server := newTestServer(t, createTestWebUI(t, appconf.Config{}))

	resp, body := getBody(t, server.URL+"/static/dashboard.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "new WebSocket")
	assert.Contains(t, body, `"payload-slider"`)

	resp, _ = getBody(t, server.URL+"/static/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportPage(t *testing.T) {
	server := newTestServer(t, createTestWebUI(t, appconf.Config{}))

	t.Run("default state", func(t *testing.T) {
		resp, body := getBody(t, server.URL+"/export.html")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "SpaceX Launch Records Dashboard")
		assert.Contains(t, body, "all_sites_pie_chart")
		assert.Contains(t, body, "site_specific_pie_chart")
		assert.Contains(t, body, "success_payload_scatter_chart")
		assert.Contains(t, body, "No Specific Site Selected")
	})

	t.Run("site and range", func(t *testing.T) {
		resp, body := getBody(t, server.URL+"/export.html?site=KSC+LC-39A&low=2000&high=6000")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Success vs. Failure for KSC LC-39A")
		assert.Contains(t, body, "Success by Payload for KSC LC-39A")
	})

	t.Run("invalid bounds", func(t *testing.T) {
		resp, body := getBody(t, server.URL+"/export.html?low=abc&high=-5")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, `low: Invalid field value for field "low".`)
	})

	t.Run("unknown site renders empty charts", func(t *testing.T) {
		resp, body := getBody(t, server.URL+"/export.html?site=Kwajalein%2FOmelek")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Success vs. Failure for Kwajalein/Omelek")
	})

	t.Run("invalid site", func(t *testing.T) {
		resp, body := getBody(t, server.URL+"/export.html?site="+strings.Repeat("x", 101))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "site: site too long (max 100 characters)")
	})
}

func TestDebugIndex(t *testing.T) {
	server := newTestServer(t, createTestWebUI(t, appconf.Config{}))

	tests := []struct {
		dataType string
		title    string
		contains string
	}{
		{"launches", "Launch Data - Launches", "F9 v1.0  B0003"},
		{"sites", "Launch Data - Sites", "VAFB SLC-4E"},
		{"statistics", "Launch Data - Statistics", "Successes: (int) 23"},
		{"statistics", "Launch Data - Statistics", "MirrorRows: (int) 56"},
		{"layout", "Dashboard - Layout", "Select a Launch Site here"},
		{"figures", "Dashboard - Initial Figures", "Total Successful Launches by Site"},
		{"", "Choose a data type", "Please use one of the following"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			resp, body := getBody(t, server.URL+"/debug/?dataType="+tt.dataType)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "<title>"+tt.title+"</title>")
			assert.True(t, strings.Contains(body, tt.contains), "missing %q", tt.contains)
		})
	}
}
