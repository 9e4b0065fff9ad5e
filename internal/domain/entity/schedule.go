package entity

import (
	"fmt"
	"slices"

	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

// Schedule agregado de planificación: líneas, órdenes y puntaje actual.
// Es la unidad que el optimizador muta (movimientos) y vuelve a puntuar.
// No es seguro para uso concurrente: una planificación la muta un único hilo de control.
type Schedule struct {
	lines     []*Line
	orders    []*Order
	lineByID  map[string]*Line
	orderByID map[string]*Order
	score     score.Score
}

// NewSchedule construye el plan a partir de líneas y órdenes recién creadas (sin asignar).
// Valida identificadores vacíos o duplicados y que las líneas compatibles de cada orden existan.
func NewSchedule(lines []*Line, orders []*Order) (*Schedule, error) {
	s := &Schedule{
		lines:     make([]*Line, 0, len(lines)),
		orders:    make([]*Order, 0, len(orders)),
		lineByID:  make(map[string]*Line, len(lines)),
		orderByID: make(map[string]*Order, len(orders)),
	}
	codes := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l == nil || l.ID == "" {
			return nil, fmt.Errorf("%w: línea sin id", domain.ErrInvalidInput)
		}
		if _, dup := s.lineByID[l.ID]; dup {
			return nil, fmt.Errorf("%w: línea %s", domain.ErrDuplicate, l.ID)
		}
		if len(l.orders) > 0 {
			return nil, fmt.Errorf("%w: la línea %s ya tiene órdenes asignadas", domain.ErrInvalidInput, l.ID)
		}
		s.lineByID[l.ID] = l
		s.lines = append(s.lines, l)
		codes[l.LineCode] = struct{}{}
	}
	for _, o := range orders {
		if o == nil || o.ID == "" {
			return nil, fmt.Errorf("%w: orden sin id", domain.ErrInvalidInput)
		}
		if _, dup := s.orderByID[o.ID]; dup {
			return nil, fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.ID)
		}
		if o.line != nil {
			return nil, fmt.Errorf("%w: la orden %s ya está asignada", domain.ErrInvalidInput, o.ID)
		}
		for _, code := range o.CompatibleLines {
			if _, ok := codes[code]; !ok {
				return nil, fmt.Errorf("%w: orden %s, línea %s", domain.ErrUnknownLine, o.ID, code)
			}
		}
		o.ordinal = len(s.orders)
		o.unassign()
		// los datos quedan fijos desde aquí; el cache se llena antes de compartir el plan entre goroutines
		o.supplyReady = false
		o.InventorySupplyDays()
		s.orderByID[o.ID] = o
		s.orders = append(s.orders, o)
	}
	return s, nil
}

// Lines líneas del plan en orden de entrada.
func (s *Schedule) Lines() []*Line { return slices.Clone(s.lines) }

// Orders órdenes del plan en orden de entrada (índice = Ordinal).
func (s *Schedule) Orders() []*Order { return slices.Clone(s.orders) }

// OrderCount cantidad de órdenes.
func (s *Schedule) OrderCount() int { return len(s.orders) }

// Line busca una línea por id.
func (s *Schedule) Line(id string) *Line { return s.lineByID[id] }

// Order busca una orden por id.
func (s *Schedule) Order(id string) *Order { return s.orderByID[id] }

// Score puntaje de la última evaluación.
func (s *Schedule) Score() score.Score { return s.score }

// SetScore registra el resultado de una evaluación (valor inmutable).
func (s *Schedule) SetScore(sc score.Score) { s.score = sc }

// AssignedOrders órdenes que pertenecen a alguna línea, en el orden de entrada.
func (s *Schedule) AssignedOrders() []*Order {
	out := make([]*Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.line != nil {
			out = append(out, o)
		}
	}
	return out
}

// UnassignedOrders órdenes sin línea, en el orden de entrada.
func (s *Schedule) UnassignedOrders() []*Order {
	out := make([]*Order, 0)
	for _, o := range s.orders {
		if o.line == nil {
			out = append(out, o)
		}
	}
	return out
}

// Assign agrega órdenes al final de la secuencia de una línea (solución inicial).
func (s *Schedule) Assign(lineID string, orderIDs ...string) error {
	l := s.lineByID[lineID]
	if l == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownLine, lineID)
	}
	for _, id := range orderIDs {
		o := s.orderByID[id]
		if o == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		if o.line != nil {
			return fmt.Errorf("%w: la orden %s aparece en más de una línea", domain.ErrDuplicate, id)
		}
		if _, err := s.Apply(Move{Order: o, Line: l, Position: l.Len()}); err != nil {
			return err
		}
	}
	return nil
}

// Refresh recalcula todo el estado derivado desde cero.
func (s *Schedule) Refresh() {
	for _, o := range s.orders {
		o.unassign()
	}
	for _, l := range s.lines {
		l.propagateFrom(0, nil)
	}
}

// Validate verifica el invariante estructural (cada orden en a lo sumo una secuencia, una sola vez)
// y la coherencia del estado derivado con las secuencias.
func (s *Schedule) Validate() error {
	seen := make(map[*Order]*Line, len(s.orders))
	for _, l := range s.lines {
		for k, o := range l.orders {
			if s.orderByID[o.ID] != o {
				return fmt.Errorf("%w: la línea %s contiene la orden ajena %s", domain.ErrInvariantViolation, l.ID, o.ID)
			}
			if prev, dup := seen[o]; dup {
				return fmt.Errorf("%w: la orden %s aparece en %s y %s", domain.ErrInvariantViolation, o.ID, prev.ID, l.ID)
			}
			seen[o] = l
			if o.line != l || o.index != k {
				return fmt.Errorf("%w: la orden %s no coincide con su posición %d en %s", domain.ErrInvariantViolation, o.ID, k, l.ID)
			}
			var wantPrev *Order
			wantStart := l.AvailableFrom
			if k > 0 {
				wantPrev = l.orders[k-1]
				wantStart = wantPrev.end
			}
			if o.previous != wantPrev || !o.start.Equal(wantStart) || !o.end.Equal(wantStart.Add(o.ProductionDuration())) {
				return fmt.Errorf("%w: estado derivado desactualizado en la orden %s", domain.ErrInvariantViolation, o.ID)
			}
		}
	}
	for _, o := range s.orders {
		if _, ok := seen[o]; !ok && (o.line != nil || o.previous != nil) {
			return fmt.Errorf("%w: la orden %s figura asignada pero no está en ninguna línea", domain.ErrInvariantViolation, o.ID)
		}
	}
	return nil
}

// Clone copia profunda del plan (datos, secuencias, estado derivado y puntaje).
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{
		lines:     make([]*Line, len(s.lines)),
		orders:    make([]*Order, len(s.orders)),
		lineByID:  make(map[string]*Line, len(s.lines)),
		orderByID: make(map[string]*Order, len(s.orders)),
		score:     s.score,
	}
	for i, o := range s.orders {
		co := o.cloneFacts()
		c.orders[i] = co
		c.orderByID[co.ID] = co
	}
	for i, l := range s.lines {
		cl := NewLine(l.ID, l.Name, l.LineCode, l.AvailableFrom)
		cl.orders = make([]*Order, len(l.orders))
		for k, o := range l.orders {
			cl.orders[k] = c.orders[o.ordinal]
		}
		c.lines[i] = cl
		c.lineByID[cl.ID] = cl
	}
	c.Refresh()
	return c
}
