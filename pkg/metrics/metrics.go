package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call metrics, labelled by remote service and operation so the
// external collaborators can be told apart on one dashboard.
var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tallerpro",
		Subsystem: "booking",
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream REST calls",
	}, []string{"service", "operation", "status"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tallerpro",
		Subsystem: "booking",
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream REST calls",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"service", "operation"})

	BookingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tallerpro",
		Subsystem: "booking",
		Name:      "lifecycle_operations_total",
		Help:      "Booking lifecycle operations by outcome state",
	}, []string{"operation", "outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tallerpro",
		Subsystem: "booking",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served",
	}, []string{"method", "path", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tallerpro",
		Subsystem: "booking",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})
)
