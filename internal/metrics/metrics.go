// Package metrics counts submissions and times their phases.
//
// There is no listener; when a textfile path is configured the registry is
// written in the Prometheus text format so a node exporter textfile collector
// can pick it up. Writes after a submission are limited to one per
// FlushInterval; callers Flush once more before exiting.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"runpad/internal/domain/execution"
)

// FlushInterval is the minimum gap between textfile writes from Observe.
const FlushInterval = time.Second

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	SubmissionsTotal *prometheus.CounterVec
	PhaseDuration    *prometheus.HistogramVec
	CleanupWarnings  prometheus.Counter

	textfile   string
	flushLimit *rate.Limiter
	logger     *zerolog.Logger
	mu         sync.Mutex
}

// New registers the collectors. textfile may be empty.
func New(textfile string, logger *zerolog.Logger) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Metrics{
		registry: reg,
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runpad_submissions_total",
				Help: "Total number of submissions by language and terminal status",
			},
			[]string{"language", "status"},
		),
		PhaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "runpad_phase_duration_seconds",
				Help:    "Duration of the compile and run phases",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"language", "phase"},
		),
		CleanupWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "runpad_cleanup_warnings_total",
				Help: "Artifacts that could not be removed",
			},
		),
		textfile:   textfile,
		flushLimit: rate.NewLimiter(rate.Every(FlushInterval), 1),
		logger:     logger,
	}
}

// Registry exposes the underlying gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one finished submission.
func (m *Metrics) Observe(res *execution.Result) {
	language := string(res.Language)
	m.SubmissionsTotal.WithLabelValues(language, string(res.Status)).Inc()
	if res.CompileDuration > 0 {
		m.PhaseDuration.WithLabelValues(language, "compile").Observe(res.CompileDuration.Seconds())
	}
	if res.Elapsed > 0 {
		m.PhaseDuration.WithLabelValues(language, "run").Observe(res.Elapsed.Seconds())
	}
	if n := len(res.Warnings); n > 0 {
		m.CleanupWarnings.Add(float64(n))
	}

	if m.textfile == "" || !m.flushLimit.Allow() {
		return
	}
	if err := m.Flush(); err != nil {
		m.logger.Warn().Err(err).Str("path", m.textfile).Msg("failed to write metrics textfile")
	}
}

// Flush writes the textfile if one is configured.
func (m *Metrics) Flush() error {
	if m.textfile == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return prometheus.WriteToTextfile(m.textfile, m.registry)
}
