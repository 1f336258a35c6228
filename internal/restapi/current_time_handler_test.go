package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentTimeHandlerRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/where/current-time.json?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, model.Code)
	assert.Equal(t, "permission denied", model.Text)
}

func TestCurrentTimeHandlerEndToEnd(t *testing.T) {
	before := time.Now().UnixMilli()
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/where/current-time.json?key=TEST")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, 200, model.Code)
	assert.Equal(t, "OK", model.Text)
	assert.Equal(t, 2, model.Version)

	entry := entryOf(t, model)
	epoch := int64(entry["time"].(float64))
	assert.GreaterOrEqual(t, epoch, before)
	assert.LessOrEqual(t, epoch, after)
	assert.NotEmpty(t, entry["readableTime"])
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/where/nothing-here.json?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestWrongMethodIsNotAllowed(t *testing.T) {
	api := createTestApi(t)
	resp, model := requestApi(t, api, http.MethodPost, "/api/where/current-time.json?key=TEST", map[string]string{})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, model.Code)
}
