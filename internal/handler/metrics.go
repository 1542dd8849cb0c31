package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// errorResponsesTotal counts error responses by HTTP status and service error kind.
	errorResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adventure_http_error_responses_total",
			Help: "Total number of gameplay error responses by status and kind.",
		},
		[]string{"status", "kind"},
	)
)
