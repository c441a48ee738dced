package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests   atomic.Int64
	DetailRequests   atomic.Int64
	TrendingRequests atomic.Int64
	FetchRequests    atomic.Int64
	FetchErrors      atomic.Int64
	RecordsExtracted atomic.Int64
	RateLimited      atomic.Int64
	AuthFailures     atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"search_requests":   metrics.SearchRequests.Load(),
		"detail_requests":   metrics.DetailRequests.Load(),
		"trending_requests": metrics.TrendingRequests.Load(),
		"fetch_requests":    metrics.FetchRequests.Load(),
		"fetch_errors":      metrics.FetchErrors.Load(),
		"records_extracted": metrics.RecordsExtracted.Load(),
		"rate_limited":      metrics.RateLimited.Load(),
		"auth_failures":     metrics.AuthFailures.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"search_requests", "detail_requests", "trending_requests",
		"fetch_requests", "fetch_errors", "records_extracted",
		"rate_limited", "auth_failures",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the apiserver package.
func IncrSearchRequests()   { metrics.SearchRequests.Add(1) }
func IncrDetailRequests()   { metrics.DetailRequests.Add(1) }
func IncrTrendingRequests() { metrics.TrendingRequests.Add(1) }
func IncrRateLimited()      { metrics.RateLimited.Add(1) }
func IncrAuthFailures()     { metrics.AuthFailures.Add(1) }
