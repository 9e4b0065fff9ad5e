package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

func TestSolverMetrics_Contadores(t *testing.T) {
	m := New("planner")
	m.MoveEvaluated(true)
	m.MoveEvaluated(true)
	m.MoveEvaluated(false)
	m.BestImproved(score.Of(-1, -20, 300))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.moves.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.moves.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.improvements))
	assert.Equal(t, -20.0, testutil.ToFloat64(m.bestScore.WithLabelValues("medium")))
}

func TestSolverMetrics_Trabajos(t *testing.T) {
	m := New("planner")
	m.JobStarted()
	m.JobStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.jobsActive))
	m.JobFinished("ok", 3*time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobsActive))
	assert.Equal(t, 1, testutil.CollectAndCount(m.jobDuration))
}

func TestSolverMetrics_Handler(t *testing.T) {
	m := New("planner")
	m.MoveEvaluated(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `planner_solver_moves_total{accepted="true"} 1`)
}
