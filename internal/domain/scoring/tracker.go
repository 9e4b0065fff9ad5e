package scoring

import (
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

// Tracker mantiene el puntaje de un plan de forma incremental: guarda el aporte de cada
// orden (por Ordinal) y tras un movimiento solo re-deriva el de las órdenes tocadas.
type Tracker struct {
	engine  *Engine
	contrib []score.Score
	total   score.Score
}

// NewTracker inicializa el seguimiento con un recálculo completo del plan.
func (e *Engine) NewTracker(s *entity.Schedule) *Tracker {
	t := &Tracker{engine: e}
	t.Reset(s)
	return t
}

// Reset vuelve a calcular todos los aportes.
func (t *Tracker) Reset(s *entity.Schedule) score.Score {
	orders := s.Orders()
	t.contrib = make([]score.Score, len(orders))
	t.total = score.Zero
	for _, o := range orders {
		c := t.engine.OrderScore(o)
		t.contrib[o.Ordinal()] = c
		t.total = t.total.Add(c)
	}
	return t.total
}

// Score puntaje actual.
func (t *Tracker) Score() score.Score { return t.total }

// Refresh re-deriva el aporte de las órdenes tocadas y devuelve el nuevo total.
// Repetir una orden es inocuo.
func (t *Tracker) Refresh(touched []*entity.Order) score.Score {
	for _, o := range touched {
		i := o.Ordinal()
		c := t.engine.OrderScore(o)
		t.total = t.total.Sub(t.contrib[i]).Add(c)
		t.contrib[i] = c
	}
	return t.total
}
