package scheduling_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Planificador-api/internal/application/scheduling"
	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
)

type fakeGenerator struct {
	jobID  string
	orders int
}

func (g *fakeGenerator) GenerateScheduleReport(_ context.Context, jobID string, s *entity.Schedule) ([]byte, error) {
	g.jobID = jobID
	g.orders = len(s.AssignedOrders())
	return []byte("%PDF-fake"), nil
}

func TestReport_TrabajoTerminado(t *testing.T) {
	m, _ := newManager(fastSolver(), 1)
	id, _, err := m.Solve(context.Background(), demoProblem(t))
	require.NoError(t, err)

	gen := &fakeGenerator{}
	b, name, err := scheduling.NewReportUseCase(m, gen).Download(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(b))
	assert.Equal(t, "plan-"+id+".pdf", name)
	assert.Equal(t, id, gen.jobID)
	assert.Equal(t, 10, gen.orders)
}

func TestReport_TrabajoEnCursoOInexistente(t *testing.T) {
	m, _ := newManager(slowSolver(), 1)
	uc := scheduling.NewReportUseCase(m, &fakeGenerator{})

	_, _, err := uc.Download(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id := m.SolveAsync(demoProblem(t))
	_, _, err = uc.Download(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NoError(t, m.Shutdown(waitCtx(t)))
}
