// Package metrics expone métricas Prometheus del optimizador y de los trabajos de planificación.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Planificador-api/internal/application/scheduling"
	"github.com/jhoicas/Planificador-api/internal/application/solver"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

var (
	_ solver.Metrics        = (*SolverMetrics)(nil)
	_ scheduling.JobMetrics = (*SolverMetrics)(nil)
)

// SolverMetrics colector con registro propio (no usa el registro global).
type SolverMetrics struct {
	registry *prometheus.Registry

	moves        *prometheus.CounterVec
	improvements prometheus.Counter
	bestScore    *prometheus.GaugeVec
	jobsActive   prometheus.Gauge
	jobDuration  *prometheus.HistogramVec
}

// New crea y registra las métricas.
func New(namespace string) *SolverMetrics {
	registry := prometheus.NewRegistry()

	m := &SolverMetrics{
		registry: registry,
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solver_moves_total",
				Help:      "Movimientos evaluados por la búsqueda local",
			},
			[]string{"accepted"},
		),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solver_best_improvements_total",
			Help:      "Veces que se encontró una nueva mejor solución",
		}),
		bestScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "solver_best_score",
				Help:      "Último mejor puntaje reportado, por nivel",
			},
			[]string{"tier"},
		),
		jobsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduling_jobs_active",
			Help:      "Trabajos optimizando en este momento",
		}),
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scheduling_job_duration_seconds",
				Help:      "Duración de los trabajos de planificación",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.moves, m.improvements, m.bestScore, m.jobsActive, m.jobDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry registro Prometheus del colector.
func (m *SolverMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro en formato de texto Prometheus.
func (m *SolverMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// MoveEvaluated implementa solver.Metrics.
func (m *SolverMetrics) MoveEvaluated(accepted bool) {
	label := "false"
	if accepted {
		label = "true"
	}
	m.moves.WithLabelValues(label).Inc()
}

// BestImproved implementa solver.Metrics.
func (m *SolverMetrics) BestImproved(s score.Score) {
	m.improvements.Inc()
	m.bestScore.WithLabelValues(score.Hard.String()).Set(float64(s.Hard))
	m.bestScore.WithLabelValues(score.Medium.String()).Set(float64(s.Medium))
	m.bestScore.WithLabelValues(score.Soft.String()).Set(float64(s.Soft))
}

// JobStarted implementa scheduling.JobMetrics.
func (m *SolverMetrics) JobStarted() { m.jobsActive.Inc() }

// JobFinished implementa scheduling.JobMetrics.
func (m *SolverMetrics) JobFinished(result string, elapsed time.Duration) {
	m.jobsActive.Dec()
	m.jobDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}
