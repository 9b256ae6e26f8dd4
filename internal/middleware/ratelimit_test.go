package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenBucket_Exhaustion(t *testing.T) {
	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if tb.Allow() {
		t.Error("bucket should be empty")
	}
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		capacity:   1,
		refillRate: 1,
	}
	if !rl.Allow("10.0.0.1") {
		t.Error("first request should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request from same client should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other clients have their own bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		capacity:   1,
		refillRate: 1,
	}
	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.RemoteAddr = "10.0.0.9:4242"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", rec.Code)
	}
}
