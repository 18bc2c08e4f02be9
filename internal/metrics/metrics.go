// Package metrics records per-run counters for the parameter tools and writes
// them in the Prometheus text format, for node_exporter's textfile collector
// on acquisition rigs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "openscope_params"

// Pack outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeFailed    = "failed"
	OutcomeUpdated   = "updated"
	OutcomeUnchanged = "unchanged"
	OutcomeSkipped   = "skipped"
)

// Recorder holds the collectors for a single tool run. Each run gets its own
// registry so repeated runs in one process never collide.
type Recorder struct {
	tool     string
	registry *prometheus.Registry

	packs   *prometheus.CounterVec
	schemas *prometheus.CounterVec
	runSecs *prometheus.GaugeVec
	lastRun *prometheus.GaugeVec
	exit    *prometheus.GaugeVec
}

// New returns a Recorder labelled with the tool name.
func New(tool string) *Recorder {
	r := &Recorder{
		tool:     tool,
		registry: prometheus.NewRegistry(),
		packs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "packs_total",
				Help:      "Packs processed, by outcome.",
			},
			[]string{"tool", "outcome"},
		),
		schemas: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schemas_written_total",
				Help:      "Schema documents written by the exporter.",
			},
			[]string{"tool"},
		),
		runSecs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall time of the last run.",
			},
			[]string{"tool"},
		),
		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last run finished.",
			},
			[]string{"tool"},
		),
		exit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "exit_code",
				Help:      "Exit code of the last run.",
			},
			[]string{"tool"},
		),
	}
	r.registry.MustRegister(r.packs, r.schemas, r.runSecs, r.lastRun, r.exit)
	return r
}

// Pack counts one pack with the given outcome.
func (r *Recorder) Pack(outcome string) {
	if r == nil {
		return
	}
	r.packs.WithLabelValues(r.tool, outcome).Inc()
}

// Packs counts n packs with the given outcome.
func (r *Recorder) Packs(outcome string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.packs.WithLabelValues(r.tool, outcome).Add(float64(n))
}

// SchemasWritten counts exported schema files.
func (r *Recorder) SchemasWritten(n int) {
	if r == nil {
		return
	}
	r.schemas.WithLabelValues(r.tool).Add(float64(n))
}

// Finish records the run duration, completion time and exit code.
func (r *Recorder) Finish(started time.Time, exitCode int) {
	if r == nil {
		return
	}
	now := time.Now()
	r.runSecs.WithLabelValues(r.tool).Set(now.Sub(started).Seconds())
	r.lastRun.WithLabelValues(r.tool).Set(float64(now.Unix()))
	r.exit.WithLabelValues(r.tool).Set(float64(exitCode))
}

// Gatherer exposes the run registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes the collected metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
