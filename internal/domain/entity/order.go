package entity

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// InfiniteSupplyDays valor centinela de días de inventario cuando no hay despachos
// mensuales: la orden nunca se considera urgente.
const InfiniteSupplyDays = math.MaxFloat64

var thirty = decimal.NewFromInt(30)

// Order representa una orden de producción de bobina madre.
//
// Los campos exportados son datos del problema y no cambian durante una planificación.
// El estado derivado (línea, posición, predecesora, inicio y fin) lo calcula exclusivamente
// la propagación del Schedule al aplicar movimientos.
type Order struct {
	ID                      string
	ProductCode             string // modelo, ej. "T10ESY", "T29QDJY"
	FormulaCode             string
	Thickness               float64
	Quantity                int
	CurrentInventory        decimal.Decimal
	MonthlyShipment         decimal.Decimal // despacho mensual promedio
	ExpectedStartTime       time.Time       // cero = sin fecha esperada
	CompatibleLines         []string        // LineCode de las líneas donde puede producirse
	ProductionDurationHours float64

	line     *Line
	index    int
	previous *Order
	start    time.Time
	end      time.Time

	ordinal     int
	supplyDays  float64
	supplyReady bool
}

// InventorySupplyDays días de cobertura = inventario actual / despacho mensual * 30.
// Sin despachos (<= 0) devuelve InfiniteSupplyDays.
func (o *Order) InventorySupplyDays() float64 {
	if !o.supplyReady {
		o.supplyDays = supplyDays(o.CurrentInventory, o.MonthlyShipment)
		o.supplyReady = true
	}
	return o.supplyDays
}

func supplyDays(inventory, shipment decimal.Decimal) float64 {
	if !shipment.IsPositive() {
		return InfiniteSupplyDays
	}
	return inventory.Mul(thirty).Div(shipment).InexactFloat64()
}

// ProductionDuration duración de producción redondeada a minutos enteros.
func (o *Order) ProductionDuration() time.Duration {
	return time.Duration(math.Round(o.ProductionDurationHours*60)) * time.Minute
}

// IsCompatibleWith true si la línea figura entre las líneas compatibles de la orden.
func (o *Order) IsCompatibleWith(line *Line) bool {
	return IsCompatibleWith(o, line)
}

// IsCompatibleWith predicado puro: el LineCode de la línea está en CompatibleLines.
func IsCompatibleWith(o *Order, line *Line) bool {
	if o == nil || line == nil {
		return false
	}
	return slices.Contains(o.CompatibleLines, line.LineCode)
}

// Line línea asignada; nil si la orden no está asignada.
func (o *Order) Line() *Line { return o.line }

// IsAssigned true si la orden pertenece a la secuencia de alguna línea.
func (o *Order) IsAssigned() bool { return o.line != nil }

// SequenceIndex posición (base 0) dentro de la línea.
func (o *Order) SequenceIndex() (int, bool) {
	if o.line == nil {
		return 0, false
	}
	return o.index, true
}

// Previous orden inmediatamente anterior en la misma línea (nil si es la primera o no está asignada).
func (o *Order) Previous() *Order { return o.previous }

// Next orden inmediatamente posterior en la misma línea.
func (o *Order) Next() *Order {
	if o.line == nil || o.index+1 >= len(o.line.orders) {
		return nil
	}
	return o.line.orders[o.index+1]
}

// StartTime inicio calculado; false si la orden no está asignada.
func (o *Order) StartTime() (time.Time, bool) {
	return o.start, o.line != nil
}

// EndTime fin calculado; false si la orden no está asignada.
func (o *Order) EndTime() (time.Time, bool) {
	return o.end, o.line != nil
}

// Ordinal índice estable de la orden dentro del Schedule (para índices por slice).
func (o *Order) Ordinal() int { return o.ordinal }

func (o *Order) unassign() {
	o.line = nil
	o.index = 0
	o.previous = nil
	o.start = time.Time{}
	o.end = time.Time{}
}

// cloneFacts copia los datos del problema sin estado derivado.
func (o *Order) cloneFacts() *Order {
	return &Order{
		ID:                      o.ID,
		ProductCode:             o.ProductCode,
		FormulaCode:             o.FormulaCode,
		Thickness:               o.Thickness,
		Quantity:                o.Quantity,
		CurrentInventory:        o.CurrentInventory,
		MonthlyShipment:         o.MonthlyShipment,
		ExpectedStartTime:       o.ExpectedStartTime,
		CompatibleLines:         slices.Clone(o.CompatibleLines),
		ProductionDurationHours: o.ProductionDurationHours,
		ordinal:                 o.ordinal,
		supplyDays:              o.supplyDays,
		supplyReady:             o.supplyReady,
	}
}

func (o *Order) String() string {
	return "Order{" + o.ID + " " + o.ProductCode + "}"
}
