// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "activities_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_signups_total",
			Help: "Total number of successful signups per activity",
		},
		[]string{"activity"},
	)

	UnregistersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_unregisters_total",
			Help: "Total number of successful unregistrations per activity",
		},
		[]string{"activity"},
	)

	DirectoryFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_directory_failures_total",
			Help: "Total number of rejected directory operations",
		},
		[]string{"operation", "error_code"},
	)

	Participants = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activities_participants",
			Help: "Current number of participants per activity",
		},
		[]string{"activity"},
	)

	EventSinkFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_event_sink_failures_total",
			Help: "Total number of roster events a sink failed to accept",
		},
		[]string{"sink"},
	)
)
