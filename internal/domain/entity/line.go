package entity

import (
	"slices"
	"time"
)

// Line representa una línea de producción. El orden de su secuencia ES la secuencia de producción.
type Line struct {
	ID            string // "LINE_1", "LINE_2"
	Name          string
	LineCode      string // se compara contra Order.CompatibleLines
	AvailableFrom time.Time

	orders []*Order
}

// NewLine construye una línea sin órdenes asignadas.
func NewLine(id, name, lineCode string, availableFrom time.Time) *Line {
	return &Line{ID: id, Name: name, LineCode: lineCode, AvailableFrom: availableFrom}
}

// Orders copia de la secuencia actual.
func (l *Line) Orders() []*Order { return slices.Clone(l.orders) }

// Len cantidad de órdenes en la secuencia.
func (l *Line) Len() int { return len(l.orders) }

// At orden en la posición i.
func (l *Line) At(i int) *Order { return l.orders[i] }

// propagateFrom recalcula el estado derivado de la secuencia desde la posición from hasta el final
// (cascada de tiempos hacia adelante) y agrega las órdenes afectadas a touched. La orden en from-1
// también se reporta porque su sucesora cambió.
func (l *Line) propagateFrom(from int, touched []*Order) []*Order {
	if from > 0 && from <= len(l.orders) {
		touched = append(touched, l.orders[from-1])
	}
	for k := from; k < len(l.orders); k++ {
		o := l.orders[k]
		o.line = l
		o.index = k
		if k == 0 {
			o.previous = nil
			o.start = l.AvailableFrom
		} else {
			o.previous = l.orders[k-1]
			o.start = o.previous.end
		}
		o.end = o.start.Add(o.ProductionDuration())
		touched = append(touched, o)
	}
	return touched
}

func (l *Line) String() string {
	return "Line{" + l.ID + " - " + l.Name + "}"
}
