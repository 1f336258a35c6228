package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/require"

	"wayfinder.app/internal/app"
	"wayfinder.app/internal/appconf"
	"wayfinder.app/internal/catalog"
	"wayfinder.app/internal/logging"
	"wayfinder.app/internal/models"
	"wayfinder.app/internal/tracker"
)

func ptr(f float64) *float64 {
	return &f
}

func testCatalog() *catalog.Catalog {
	return catalog.NewCatalog("memory", []gtfs.Stop{
		{Id: "1", Code: "C1", Name: "Central", Latitude: ptr(47.6097), Longitude: ptr(-122.3331)},
		{Id: "2", Code: "C2", Name: "Pioneer Square", Latitude: ptr(47.6015), Longitude: ptr(-122.3343)},
		{Id: "3", Code: "C3", Name: "Capitol Hill", Latitude: ptr(47.6195), Longitude: ptr(-122.3205)},
	})
}

// createTestApi creates a new RestAPI instance with an in-memory catalog for use in tests.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)

	a := &app.Application{
		Config: appconf.Config{
			EnvName:   "test",
			ApiKeys:   []string{"TEST"},
			RateLimit: -1,
			Projection: appconf.ProjectionConfig{
				FOV:            60,
				ViewportWidth:  300,
				ViewportHeight: 600,
			},
		},
		Logger:   logger,
		Sessions: tracker.NewManager(tracker.Config{FOV: 60}, logger),
	}
	a.SetCatalog(testCatalog())

	api := NewRestAPI(a)
	t.Cleanup(func() {
		api.Shutdown()
		a.Sessions.Shutdown()
	})
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	return requestApi(t, api, http.MethodGet, endpoint, nil)
}

// requestApi sends method to endpoint with an optional JSON body and decodes the envelope.
func requestApi(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// requestFieldErrors sends a request expected to fail validation and returns the field errors.
func requestFieldErrors(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) (*http.Response, map[string][]string) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var response struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp, response.FieldErrors
}

// entryOf extracts data.entry as a map.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}

// listOf extracts data.list and data.limitExceeded.
func listOf(t *testing.T, model models.ResponseModel) ([]interface{}, bool) {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	limitExceeded, _ := data["limitExceeded"].(bool)
	return list, limitExceeded
}
