package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_http_requests_total",
			Help: "The total number of inbound API requests",
		},
		[]string{"route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proxy_http_request_duration_seconds",
			Help:    "Duration of inbound API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_upstream_requests_total",
			Help: "The total number of outbound calls to external providers",
		},
		[]string{"upstream", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proxy_upstream_duration_seconds",
			Help:    "Duration of outbound calls to external providers",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	ResultsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_results_returned_total",
			Help: "The total number of result items returned to clients",
		},
		[]string{"intent"},
	)

	DatesDefaulted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proxy_scholarship_dates_defaulted_total",
			Help: "Scholarship results whose missing date was set to the request date",
		},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "proxy_circuit_breaker_state",
			Help: "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open)",
		},
		[]string{"upstream"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_search_events_published_total",
			Help: "Search events handed to the event producer",
		},
		[]string{"intent", "status"},
	)
)
