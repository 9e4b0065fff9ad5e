package solver

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
)

// Director es el único punto por el que un optimizador modifica un plan.
// Cada Do aplica el movimiento, propaga el estado derivado y actualiza el puntaje
// incremental como una sola operación: si falla, el plan no cambia.
type Director struct {
	schedule   *entity.Schedule
	engine     *scoring.Engine
	tracker    *scoring.Tracker
	fullAssert bool
}

// Undo deshace uno o varios cambios aplicados por el Director.
type Undo struct {
	changes []entity.Change
	before  score.Score
}

// Before puntaje previo al movimiento.
func (u Undo) Before() score.Score { return u.before }

// IsNoop true si el movimiento no cambió el plan.
func (u Undo) IsNoop() bool {
	for _, c := range u.changes {
		if !c.IsNoop() {
			return false
		}
	}
	return true
}

// NewDirector toma posesión del plan: el llamador no debe modificarlo por fuera.
// Con fullAssert cada movimiento se verifica contra un recálculo completo.
func NewDirector(s *entity.Schedule, engine *scoring.Engine, fullAssert bool) *Director {
	d := &Director{
		schedule:   s,
		engine:     engine,
		tracker:    engine.NewTracker(s),
		fullAssert: fullAssert,
	}
	s.SetScore(d.tracker.Score())
	return d
}

// Schedule plan que gestiona el Director (solo lectura para el llamador).
func (d *Director) Schedule() *entity.Schedule { return d.schedule }

// Score puntaje actual.
func (d *Director) Score() score.Score { return d.tracker.Score() }

// Assigned órdenes asignadas.
func (d *Director) Assigned() []*entity.Order { return d.schedule.AssignedOrders() }

// Unassigned órdenes sin asignar.
func (d *Director) Unassigned() []*entity.Order { return d.schedule.UnassignedOrders() }

// Snapshot copia profunda del plan con su puntaje.
func (d *Director) Snapshot() *entity.Schedule {
	c := d.schedule.Clone()
	c.SetScore(d.tracker.Score())
	return c
}

// Do aplica un movimiento de reubicación.
func (d *Director) Do(m entity.Move) (Undo, error) {
	u := Undo{before: d.tracker.Score()}
	ch, err := d.apply(m)
	if err != nil {
		return Undo{}, err
	}
	u.changes = append(u.changes, ch)
	if err := d.check(u); err != nil {
		return Undo{}, err
	}
	return u, nil
}

// DoSwap intercambia las posiciones de dos órdenes asignadas (misma línea o distintas).
// Se implementa como dos reubicaciones; Undo las revierte en orden inverso.
func (d *Director) DoSwap(a, b *entity.Order) (Undo, error) {
	u := Undo{before: d.tracker.Score()}
	if a == b {
		return u, nil
	}
	if !a.IsAssigned() || !b.IsAssigned() {
		return Undo{}, fmt.Errorf("%w: swap requiere dos órdenes asignadas", domain.ErrInvalidMove)
	}
	ia, _ := a.SequenceIndex()
	ib, _ := b.SequenceIndex()
	la, lb := a.Line(), b.Line()
	if la == lb && ia > ib {
		a, b = b, a
		ia, ib = ib, ia
	}

	first, err := d.apply(entity.Move{Order: a, Line: lb, Position: ib})
	if err != nil {
		return Undo{}, err
	}
	u.changes = append(u.changes, first)
	second, err := d.apply(entity.Move{Order: b, Line: la, Position: ia})
	if err != nil {
		if rerr := d.revert(u); rerr != nil {
			return Undo{}, errors.Join(err, rerr)
		}
		return Undo{}, err
	}
	u.changes = append(u.changes, second)
	if err := d.check(u); err != nil {
		return Undo{}, err
	}
	return u, nil
}

// Undo revierte un movimiento previo. Debe llamarse en orden LIFO.
func (d *Director) Undo(u Undo) error {
	if err := d.revert(u); err != nil {
		return err
	}
	if d.tracker.Score() != u.before {
		return fmt.Errorf("%w: undo dejó %s, se esperaba %s",
			domain.ErrScoreCorruption, d.tracker.Score(), u.before)
	}
	return nil
}

// Evaluate puntaje que tendría el plan tras el movimiento, sin dejarlo aplicado.
func (d *Director) Evaluate(m entity.Move) (score.Score, error) {
	u, err := d.Do(m)
	if err != nil {
		return score.Zero, err
	}
	after := d.tracker.Score()
	if err := d.Undo(u); err != nil {
		return score.Zero, err
	}
	return after, nil
}

func (d *Director) apply(m entity.Move) (entity.Change, error) {
	ch, err := d.schedule.Apply(m)
	if err != nil {
		return entity.Change{}, err
	}
	d.schedule.SetScore(d.tracker.Refresh(ch.Touched))
	return ch, nil
}

func (d *Director) revert(u Undo) error {
	for i := len(u.changes) - 1; i >= 0; i-- {
		if _, err := d.apply(u.changes[i].Inverse()); err != nil {
			return fmt.Errorf("revertir movimiento: %w", err)
		}
	}
	return nil
}

// check en modo fullAssert compara el puntaje incremental con un recálculo completo.
// Si no coinciden revierte el movimiento y reconstruye el tracker.
func (d *Director) check(u Undo) error {
	if !d.fullAssert {
		return nil
	}
	incremental := d.tracker.Score()
	full := d.engine.Calculate(d.schedule)
	if incremental == full {
		return nil
	}
	corruption := fmt.Errorf("%w: incremental %s, completo %s", domain.ErrScoreCorruption, incremental, full)
	rerr := d.revert(u)
	d.schedule.SetScore(d.tracker.Reset(d.schedule))
	if rerr != nil {
		return errors.Join(corruption, rerr)
	}
	return corruption
}
