package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiterExhaustsBucket(t *testing.T) {
	rl := NewRateLimiter(3, 1)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("bucket should be empty")
	}
	// a different client gets its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Fatal("second client should pass")
	}
}

func TestRateLimiterStop(t *testing.T) {
	rl := NewRateLimiter(2, 1)
	if !rl.Allow("10.0.0.9") {
		t.Fatal("first request should pass")
	}

	rl.Stop()
	rl.Stop() // idempotent

	// limiting still works without the eviction goroutine
	if !rl.Allow("10.0.0.9") {
		t.Fatal("second request should pass")
	}
	if rl.Allow("10.0.0.9") {
		t.Fatal("bucket should be empty after Stop")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)
	req.RemoteAddr = "10.0.0.3:51000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", rec.Code)
	}

	// same host, different source port: same bucket
	req2 := httptest.NewRequest(http.MethodGet, "/v1/analyses", nil)
	req2.RemoteAddr = "10.0.0.3:51001"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req2)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", rec.Code)
	}
}

func TestRateLimitSkipsProbes(t *testing.T) {
	h := RateLimitMiddleware(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.4:51000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("probe %d: status = %d", i, rec.Code)
		}
	}
}
