package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOKResponse(t *testing.T) {
	testData := map[string]string{"status": "all good"}

	before := time.Now().UnixMilli()
	response := NewOKResponse(testData)
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusOK, response.Code, "Response code should be StatusOK")
	assert.Equal(t, "OK", response.Text, "Response text should be 'OK'")
	assert.Equal(t, testData, response.Data, "Response data should match input")
	assert.Equal(t, 2, response.Version, "Response version should be 2")
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewEntryResponse(t *testing.T) {
	layout := Layout{Title: "SpaceX Launch Records Dashboard"}

	response := NewEntryResponse(layout)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, EntryData{Entry: layout}, response.Data)

	encoded, err := json.Marshal(response)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"data":{"entry":{"title":"SpaceX Launch Records Dashboard"`)
}

func TestNewListResponse(t *testing.T) {
	sites := []string{"CCAFS LC-40", "VAFB SLC-4E"}

	response := NewListResponse(sites)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, ListData{List: sites}, response.Data)

	encoded, err := json.Marshal(response)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"limitExceeded":false`)
}

func TestNewErrorResponse(t *testing.T) {
	response := NewErrorResponse(http.StatusNotFound, "resource not found")

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Equal(t, "resource not found", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.Nil(t, response.Data)
	assert.InDelta(t, time.Now().UnixMilli(), response.CurrentTime, 1000)
}
