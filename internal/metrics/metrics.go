// Package metrics exposes the engine's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HeartbeatsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auralis_heartbeats_processed_total",
		Help: "Heartbeats accepted and persisted.",
	})
	HeartbeatFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auralis_heartbeat_failures_total",
		Help: "Heartbeats that failed to persist.",
	})
	StyleSwitches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auralis_style_switches_total",
		Help: "Style changes applied to terminals.",
	})
	ResolverRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auralis_program_resolutions_total",
		Help: "Program resolver lookups served.",
	})
	ActivityEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auralis_activity_events_total",
		Help: "Audit events recorded, by action.",
	}, []string{"action"})
	TerminalsPlaying = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "auralis_terminals_playing",
		Help: "Terminals reported playing in the latest live status build.",
	})
)
