// Package metrics collects Prometheus metrics about user actions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeBusy  = "busy"
)

// Recorder is what the dispatchers report to.
type Recorder interface {
	RecordAction(action, outcome string, d time.Duration)
	RecordBackground(action string, mutateErr, refreshErr error)
}

type Collector struct {
	actions    *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	background *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "decipline_client_actions_total",
			Help: "User actions by outcome.",
		}, []string{"action", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "decipline_client_action_duration_seconds",
			Help:    "Wall time of user actions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
		background: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "decipline_client_background_total",
			Help: "Background task mutations by phase and outcome.",
		}, []string{"action", "phase", "outcome"}),
	}

	reg.MustRegister(c.actions, c.latency, c.background)
	return c
}

func (c *Collector) RecordAction(action, outcome string, d time.Duration) {
	c.actions.WithLabelValues(action, outcome).Inc()
	if outcome != OutcomeBusy {
		c.latency.WithLabelValues(action).Observe(d.Seconds())
	}
}

func (c *Collector) RecordBackground(action string, mutateErr, refreshErr error) {
	c.background.WithLabelValues(action, "mutate", outcome(mutateErr)).Inc()
	c.background.WithLabelValues(action, "refresh", outcome(refreshErr)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordAction(string, string, time.Duration) {}
func (Nop) RecordBackground(string, error, error)      {}
