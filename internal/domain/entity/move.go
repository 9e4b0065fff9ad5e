package entity

import (
	"fmt"
	"slices"

	"github.com/jhoicas/Planificador-api/internal/domain"
)

// Move reubica una orden: la quita de su posición actual (si tiene) y la inserta en Position
// dentro de la secuencia de Line. Line nil desasigna la orden.
// Position se interpreta sobre la secuencia destino ya sin la orden.
type Move struct {
	Order    *Order
	Line     *Line
	Position int
}

// Placement ubicación de una orden (Line nil = sin asignar).
type Placement struct {
	Line     *Line
	Position int
}

// Change resultado de aplicar un Move.
type Change struct {
	Move Move
	From Placement
	// Touched órdenes cuyo estado derivado (o sucesora) cambió; puede contener repetidos.
	Touched []*Order
}

// Inverse movimiento que deshace el cambio.
func (c Change) Inverse() Move {
	return Move{Order: c.Move.Order, Line: c.From.Line, Position: c.From.Position}
}

// IsNoop true si el movimiento no modificó el plan.
func (c Change) IsNoop() bool { return len(c.Touched) == 0 }

// Apply aplica el movimiento y propaga el estado derivado solo sobre los tramos afectados
// de las secuencias (desde el punto de mutación hasta el final).
// Todas las validaciones ocurren antes de mutar: ante error el plan queda intacto.
func (s *Schedule) Apply(m Move) (Change, error) {
	o := m.Order
	if o == nil || s.orderByID[o.ID] != o {
		return Change{}, fmt.Errorf("%w: la orden no pertenece al plan", domain.ErrInvalidMove)
	}
	if m.Line != nil && s.lineByID[m.Line.ID] != m.Line {
		return Change{}, fmt.Errorf("%w: la línea %s no pertenece al plan", domain.ErrInvalidMove, m.Line.ID)
	}

	from := Placement{Line: o.line}
	if o.line != nil {
		if o.index < 0 || o.index >= len(o.line.orders) || o.line.orders[o.index] != o {
			return Change{}, fmt.Errorf("%w: la orden %s no está en la posición %d de %s",
				domain.ErrInvariantViolation, o.ID, o.index, o.line.ID)
		}
		from.Position = o.index
	}

	if m.Line != nil {
		limit := len(m.Line.orders)
		if m.Line == o.line {
			limit--
		} else if slices.Contains(m.Line.orders, o) {
			return Change{}, fmt.Errorf("%w: la orden %s quedaría duplicada en %s",
				domain.ErrInvariantViolation, o.ID, m.Line.ID)
		}
		if m.Position < 0 || m.Position > limit {
			return Change{}, fmt.Errorf("%w: posición %d fuera de rango [0,%d] en %s",
				domain.ErrInvalidMove, m.Position, limit, m.Line.ID)
		}
	}

	if m.Line == from.Line && (m.Line == nil || m.Position == from.Position) {
		return Change{Move: m, From: from}, nil
	}

	if from.Line != nil {
		from.Line.orders = slices.Delete(from.Line.orders, from.Position, from.Position+1)
	}
	if m.Line != nil {
		m.Line.orders = slices.Insert(m.Line.orders, m.Position, o)
	}

	touched := make([]*Order, 0, 8)
	switch {
	case from.Line != nil && from.Line == m.Line:
		touched = m.Line.propagateFrom(min(from.Position, m.Position), touched)
	default:
		if from.Line != nil {
			touched = from.Line.propagateFrom(from.Position, touched)
		}
		if m.Line != nil {
			touched = m.Line.propagateFrom(m.Position, touched)
		} else {
			o.unassign()
			touched = append(touched, o)
		}
	}
	return Change{Move: m, From: from, Touched: touched}, nil
}
