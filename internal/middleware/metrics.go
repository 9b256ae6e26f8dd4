package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal   uint64
	RequestsSuccess uint64
	RequestsFailed  uint64
	AnalysesTotal   uint64
	FallbacksTotal  uint64
	StartTime       time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementRequests increments total request counter
func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

// IncrementSuccess increments successful request counter
func IncrementSuccess() {
	atomic.AddUint64(&globalMetrics.RequestsSuccess, 1)
}

// IncrementFailed increments failed request counter
func IncrementFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

// IncrementAnalyses increments completed analysis counter
func IncrementAnalyses() {
	atomic.AddUint64(&globalMetrics.AnalysesTotal, 1)
}

// IncrementFallbacks counts analyses served by the heuristic path
func IncrementFallbacks() {
	atomic.AddUint64(&globalMetrics.FallbacksTotal, 1)
}

// MetricsMiddleware tracks request outcomes
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode < 400 {
			IncrementSuccess()
		} else {
			IncrementFailed()
		}
	})
}

// MetricsHandler exposes current metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	out := map[string]any{
		"requests_total":   atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_success": atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":  atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"analyses_total":   atomic.LoadUint64(&globalMetrics.AnalysesTotal),
		"fallbacks_total":  atomic.LoadUint64(&globalMetrics.FallbacksTotal),
		"uptime_seconds":   int64(time.Since(globalMetrics.StartTime).Seconds()),
		"goroutines":       runtime.NumGoroutine(),
		"heap_alloc_bytes": mem.HeapAlloc,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
