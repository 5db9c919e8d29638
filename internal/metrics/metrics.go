// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkbio_http_requests_total",
		Help: "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkbio_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	UsernameClaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkbio_username_claims_total",
		Help: "Username claim attempts by outcome.",
	}, []string{"outcome"})

	AvailabilityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkbio_availability_checks_total",
		Help: "Username availability checks by result.",
	}, []string{"result"})

	BlobReclaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkbio_blob_reclaims_total",
		Help: "Blob reclamations by source and result (ok, in_use, error).",
	}, []string{"source", "result"})

	SlugResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkbio_slug_resolutions_total",
		Help: "Public slug resolutions by match kind (claimed or fallback).",
	}, []string{"kind"})
)
