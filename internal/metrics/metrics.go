// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished requests by route pattern, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "Total HTTP requests handled",
	}, []string{"route", "method", "status"})

	// HTTPRequestDuration observes request latency by route pattern and method.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ImportItems counts import entries by kind and outcome (created, updated, failed).
	ImportItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_import_items_total",
		Help: "Import entries processed",
	}, []string{"kind", "outcome"})
)
