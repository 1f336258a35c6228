package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewRateLimitMiddleware(t *testing.T) {
	middleware := NewRateLimitMiddleware(10, time.Second)
	assert.NotNil(t, middleware, "Middleware should not be nil")
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	rl := newRateLimiter(3, time.Second)
	defer rl.Stop()
	limitedHandler := rl.Handler(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-api-key", nil))
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-api-key", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Request over limit should be blocked")
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var body errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, http.StatusTooManyRequests, body.Code)
	assert.Equal(t, 2, body.Version)
}

func TestRateLimitMiddleware_PerAPIKeyLimiting(t *testing.T) {
	rl := newRateLimiter(2, time.Second)
	defer rl.Stop()
	limitedHandler := rl.Handler(okHandler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=api-key-1", nil))
		assert.Equal(t, http.StatusOK, w.Code, "API key 1 request %d should be allowed", i+1)
	}

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=api-key-1", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "API key 1 should be rate limited")

	w = httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=api-key-2", nil))
	assert.Equal(t, http.StatusOK, w.Code, "API key 2 should not be affected")
}

func TestRateLimitMiddleware_HandlesNoAPIKey(t *testing.T) {
	rl := newRateLimiter(5, time.Second)
	defer rl.Stop()

	w := httptest.NewRecorder()
	rl.Handler(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code, "Request without API key should be processed")
}

func TestRateLimitMiddleware_ZeroAndNegativeRates(t *testing.T) {
	blocked := newRateLimiter(0, time.Second)
	defer blocked.Stop()
	w := httptest.NewRecorder()
	blocked.Handler(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/test?key=k", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))

	unlimited := newRateLimiter(-1, time.Second)
	defer unlimited.Stop()
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		unlimited.Handler(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/test?key=k", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	rl := newRateLimiter(1, 100*time.Millisecond)
	defer rl.Stop()
	limitedHandler := rl.Handler(okHandler())

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-key", nil))
	assert.Equal(t, http.StatusOK, w.Code, "First request should succeed")

	w = httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-key", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Second request should be rate limited")

	time.Sleep(150 * time.Millisecond)

	w = httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-key", nil))
	assert.Equal(t, http.StatusOK, w.Code, "Request after refill should succeed")
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	rl := newRateLimiter(5, time.Hour)
	defer rl.Stop()
	limitedHandler := rl.Handler(okHandler())

	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := map[int]int{}

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=concurrent", nil))
			mu.Lock()
			codes[w.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, codes[http.StatusOK], "Exactly the burst should be allowed")
	assert.Equal(t, 15, codes[http.StatusTooManyRequests])
}

func TestRateLimitMiddleware_EvictsIdleLimiters(t *testing.T) {
	rl := newRateLimiter(5, time.Second)
	defer rl.Stop()

	rl.getLimiter("old")
	rl.getLimiter("fresh")

	rl.mu.Lock()
	rl.limiters["old"].lastSeen = time.Now().Add(-2 * limiterIdleExpiry)
	rl.mu.Unlock()

	assert.Equal(t, 1, rl.evictIdle(time.Now()))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "old")
	assert.Contains(t, rl.limiters, "fresh")
}

func TestRateLimitMiddleware_StopIsIdempotent(t *testing.T) {
	rl := newRateLimiter(5, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
