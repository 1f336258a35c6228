package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "Basic ID",
			id:   "123",
			want: "123",
		},
		{
			name: "ID with JSON extension",
			id:   "456.json",
			want: "456",
		},
		{
			name: "ID with multiple dots",
			id:   "789.data.json",
			want: "789.data",
		},
		{
			name: "json inside the ID is kept",
			id:   "stop.jsonish",
			want: "stop.jsonish",
		},
		{
			name: "only the final suffix is trimmed",
			id:   "feed.json.json",
			want: "feed.json",
		},
		{
			name: "percent-encoded ID",
			id:   "1_75403%20north.json",
			want: "1_75403 north",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.HandlerFunc(http.MethodGet, "/api/test/:id", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "id")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/test/"+tc.id, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result, "ExtractIDFromParams should correctly extract and clean the ID")
		})
	}
}

func TestExtractIDFromParamsWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/test/1", nil)
	assert.Equal(t, "", ExtractIDFromParams(req, "id"))
}
