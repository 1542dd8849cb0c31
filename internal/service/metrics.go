package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_sessions_started_total",
		Help: "Total number of sessions started or restarted at the start scene.",
	})

	sessionsResumedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_sessions_resumed_total",
		Help: "Total number of start requests that resumed an active session.",
	})

	navigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adventure_navigations_total",
			Help: "Total number of navigation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	endingsReachedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adventure_endings_reached_total",
			Help: "Total number of completed sessions by ending type.",
		},
		[]string{"ending_type"},
	)

	sessionsAbandonedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_sessions_abandoned_total",
		Help: "Total number of abandoned sessions.",
	})

	visitAuditFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_visit_audit_failures_total",
		Help: "Total number of scene visits that could not be recorded.",
	})

	eventPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adventure_event_publish_failures_total",
		Help: "Total number of game events that could not be published.",
	})
)
