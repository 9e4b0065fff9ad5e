// Package solver contiene el contrato de movimientos (Director) y el optimizador de referencia:
// heurística de construcción seguida de búsqueda local con aceptación tardía.
package solver

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
)

// Config parámetros de terminación y búsqueda.
type Config struct {
	// TimeLimit duración máxima total (0 = sin límite).
	TimeLimit time.Duration
	// UnimprovedLimit se detiene si no mejora el mejor puntaje en este tiempo (0 = sin límite).
	UnimprovedLimit time.Duration
	// StepLimit número máximo de pasos de búsqueda local (0 = sin límite).
	StepLimit int
	// LateAcceptanceSize longitud de la lista de aceptación tardía.
	LateAcceptanceSize int
	// Seed semilla del generador; misma semilla y mismos pasos ⇒ mismo resultado.
	Seed uint64
	// FullAssert verifica cada movimiento contra un recálculo completo.
	FullAssert bool
}

// DefaultConfig valores por defecto.
func DefaultConfig() Config {
	return Config{
		TimeLimit:          30 * time.Second,
		UnimprovedLimit:    5 * time.Second,
		LateAcceptanceSize: 400,
		Seed:               42,
	}
}

// Metrics observador de la búsqueda (Prometheus en producción).
type Metrics interface {
	MoveEvaluated(accepted bool)
	BestImproved(s score.Score)
}

type nopMetrics struct{}

func (nopMetrics) MoveEvaluated(bool)       {}
func (nopMetrics) BestImproved(score.Score) {}

// BestListener recibe una copia de cada nueva mejor solución.
type BestListener func(best *entity.Schedule)

// Solver optimizador de referencia.
type Solver struct {
	engine  *scoring.Engine
	cfg     Config
	metrics Metrics
	now     func() time.Time
}

// New construye el optimizador. metrics puede ser nil.
func New(engine *scoring.Engine, cfg Config, metrics Metrics) *Solver {
	if cfg.LateAcceptanceSize <= 0 {
		cfg.LateAcceptanceSize = DefaultConfig().LateAcceptanceSize
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Solver{engine: engine, cfg: cfg, metrics: metrics, now: time.Now}
}

// Engine motor de puntaje del optimizador.
func (s *Solver) Engine() *scoring.Engine { return s.engine }

// Solve optimiza una copia del plan recibido y devuelve la mejor solución encontrada.
// La cancelación del contexto se revisa entre movimientos; nunca deja un movimiento a medias.
// Con el contexto cancelado devuelve la mejor solución hasta el momento y ctx.Err() no se
// considera un error.
func (s *Solver) Solve(ctx context.Context, problem *entity.Schedule, onBest BestListener) (*entity.Schedule, error) {
	if onBest == nil {
		onBest = func(*entity.Schedule) {}
	}
	work := problem.Clone()
	d := NewDirector(work, s.engine, s.cfg.FullAssert)

	start := s.now()
	run := &run{
		solver:   s,
		ctx:      ctx,
		director: d,
		rng:      rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed^0x9e3779b97f4a7c15)),
		start:    start,
		lastBest: start,
		onBest:   onBest,
	}
	run.best = d.Snapshot()

	if len(work.Lines()) == 0 || work.OrderCount() == 0 {
		return run.best, nil
	}
	if err := run.construct(); err != nil {
		return nil, err
	}
	run.improved()
	if err := run.localSearch(); err != nil {
		return nil, err
	}
	return run.best, nil
}

type run struct {
	solver   *Solver
	ctx      context.Context
	director *Director
	rng      *rand.Rand
	start    time.Time
	lastBest time.Time
	best     *entity.Schedule
	onBest   BestListener
}

func (r *run) terminated(step int) bool {
	if r.ctx.Err() != nil {
		return true
	}
	cfg := r.solver.cfg
	if cfg.StepLimit > 0 && step >= cfg.StepLimit {
		return true
	}
	now := r.solver.now()
	if cfg.TimeLimit > 0 && now.Sub(r.start) >= cfg.TimeLimit {
		return true
	}
	return cfg.UnimprovedLimit > 0 && now.Sub(r.lastBest) >= cfg.UnimprovedLimit
}

func (r *run) improved() {
	r.best = r.director.Snapshot()
	r.lastBest = r.solver.now()
	r.solver.metrics.BestImproved(r.best.Score())
	r.onBest(r.best)
}

// construct asigna primero las órdenes con menor cobertura de inventario, cada una en la
// posición (línea, índice) que deja el mejor puntaje.
func (r *run) construct() error {
	pending := r.director.Unassigned()
	slices.SortStableFunc(pending, func(a, b *entity.Order) int {
		if c := cmp.Compare(a.InventorySupplyDays(), b.InventorySupplyDays()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	lines := r.director.Schedule().Lines()
	for _, o := range pending {
		if r.ctx.Err() != nil {
			return nil
		}
		var (
			bestMove  entity.Move
			bestScore score.Score
			found     bool
		)
		for _, l := range lines {
			for pos := 0; pos <= l.Len(); pos++ {
				m := entity.Move{Order: o, Line: l, Position: pos}
				sc, err := r.director.Evaluate(m)
				if err != nil {
					return err
				}
				if !found || sc.BetterThan(bestScore) {
					bestMove, bestScore, found = m, sc, true
				}
			}
		}
		if _, err := r.director.Do(bestMove); err != nil {
			return err
		}
	}
	return nil
}

// localSearch aceptación tardía: un movimiento se acepta si no empeora el puntaje actual
// o el registrado hace LateAcceptanceSize pasos.
func (r *run) localSearch() error {
	d := r.director
	size := r.solver.cfg.LateAcceptanceSize
	history := make([]score.Score, size)
	for i := range history {
		history[i] = d.Score()
	}
	assigned := d.Assigned()
	if len(assigned) == 0 {
		return nil
	}
	lines := d.Schedule().Lines()

	for step := 0; !r.terminated(step); step++ {
		current := d.Score()
		u, err := r.randomMove(assigned, lines)
		if err != nil {
			return err
		}
		if u.IsNoop() {
			continue
		}
		candidate := d.Score()
		slot := step % size
		accepted := candidate.Compare(current) >= 0 || candidate.Compare(history[slot]) >= 0
		r.solver.metrics.MoveEvaluated(accepted)
		if !accepted {
			if err := d.Undo(u); err != nil {
				return err
			}
		} else if candidate.BetterThan(r.best.Score()) {
			r.improved()
		}
		history[slot] = d.Score()
	}
	return nil
}

func (r *run) randomMove(assigned []*entity.Order, lines []*entity.Line) (Undo, error) {
	d := r.director
	o := assigned[r.rng.IntN(len(assigned))]
	if r.rng.IntN(2) == 0 && len(assigned) > 1 {
		other := assigned[r.rng.IntN(len(assigned))]
		return d.DoSwap(o, other)
	}
	l := lines[r.rng.IntN(len(lines))]
	limit := l.Len()
	if o.Line() == l {
		limit--
	}
	return d.Do(entity.Move{Order: o, Line: l, Position: r.rng.IntN(limit + 1)})
}
