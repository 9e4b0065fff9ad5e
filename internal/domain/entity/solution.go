package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

// SolverStatus estado de un trabajo de planificación.
type SolverStatus string

const (
	// StatusScheduled trabajo aceptado, esperando cupo de ejecución.
	StatusScheduled SolverStatus = "SOLVING_SCHEDULED"
	// StatusActive optimizando.
	StatusActive SolverStatus = "SOLVING_ACTIVE"
	// StatusNotSolving terminado (con o sin terminación anticipada).
	StatusNotSolving SolverStatus = "NOT_SOLVING"
)

// SolutionRecord solución persistida de un trabajo.
type SolutionRecord struct {
	JobID       string
	Status      SolverStatus
	Score       score.Score
	Payload     json.RawMessage // plan completo serializado (mismo formato que la API)
	Assignments []OrderAssignment
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderAssignment fila por orden de una solución, para consultas sin deserializar el plan.
type OrderAssignment struct {
	OrderID          string
	ProductCode      string
	LineID           string // vacío = sin asignar
	Position         int
	StartTime        time.Time
	EndTime          time.Time
	CurrentInventory decimal.Decimal
	SupplyDays       *float64 // nil = cobertura infinita
}

// AssignmentsOf extrae las filas por orden del plan.
func AssignmentsOf(s *Schedule) []OrderAssignment {
	out := make([]OrderAssignment, 0, len(s.orders))
	for _, o := range s.orders {
		a := OrderAssignment{
			OrderID:          o.ID,
			ProductCode:      o.ProductCode,
			Position:         -1,
			CurrentInventory: o.CurrentInventory,
		}
		if o.line != nil {
			a.LineID = o.line.ID
			a.Position = o.index
			a.StartTime = o.start
			a.EndTime = o.end
		}
		if days := o.InventorySupplyDays(); days != InfiniteSupplyDays {
			a.SupplyDays = &days
		}
		out = append(out, a)
	}
	return out
}
