package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Planificador-api/internal/domain/score"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
)

// LocalDateTimeLayout formato de fecha-hora local (sin zona) del front-end.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Cantidades como número JSON, igual que el front-end.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

var localDateTimeInputLayouts = []string{
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
}

// LocalDateTime fecha-hora sin zona horaria; se interpreta en UTC.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime envuelve t (nil si t es cero).
func NewLocalDateTime(t time.Time) *LocalDateTime {
	if t.IsZero() {
		return nil
	}
	return &LocalDateTime{Time: t.UTC()}
}

// ParseLocalDateTime acepta "2006-01-02T15:04:05", "2006-01-02T15:04" o RFC3339.
// Un RFC3339 con desplazamiento se lleva a UTC, la misma referencia de las fechas sin zona.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	for _, layout := range localDateTimeInputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return LocalDateTime{Time: t.UTC()}, nil
		}
	}
	return LocalDateTime{}, fmt.Errorf("fecha-hora inválida %q, se espera %s", s, LocalDateTimeLayout)
}

// MarshalJSON escribe la fecha sin zona.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(LocalDateTimeLayout))
}

// UnmarshalJSON lee una fecha local.
func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ProductionLineDTO línea de producción. Orders son IDs de órdenes en secuencia:
// en la entrada, una asignación inicial opcional; en la salida, la secuencia resuelta.
type ProductionLineDTO struct {
	ID            string         `json:"id" validate:"required,max=64"`
	Name          string         `json:"name" validate:"max=200"`
	LineCode      string         `json:"lineCode" validate:"required,max=64"`
	AvailableFrom *LocalDateTime `json:"availableFrom" validate:"required" swaggertype:"string" example:"2026-03-01T08:00:00"`
	Orders        []string       `json:"orders"`
}

// OrderDTO orden de bobina madre. Los campos derivados (assignedLine … endTime) son null
// mientras la orden no esté asignada.
type OrderDTO struct {
	ID                      string          `json:"id" validate:"required,max=64"`
	ProductCode             string          `json:"productCode" validate:"required,max=64"`
	FormulaCode             string          `json:"formulaCode" validate:"max=64"`
	Thickness               float64         `json:"thickness"`
	Quantity                int             `json:"quantity" validate:"gte=0"`
	CurrentInventory        decimal.Decimal `json:"currentInventory" swaggertype:"number"`
	MonthlyShipment         decimal.Decimal `json:"monthlyShipment" swaggertype:"number"`
	ExpectedStartTime       *LocalDateTime  `json:"expectedStartTime" swaggertype:"string" example:"2026-03-01T08:00:00"`
	CompatibleLines         []string        `json:"compatibleLines" validate:"dive,required"`
	ProductionDurationHours float64         `json:"productionDurationHours" validate:"gte=0"`

	AssignedLine  *string        `json:"assignedLine"`
	SequenceIndex *int           `json:"sequenceIndex"`
	PreviousOrder *string        `json:"previousOrder"`
	StartTime     *LocalDateTime `json:"startTime" swaggertype:"string"`
	EndTime       *LocalDateTime `json:"endTime" swaggertype:"string"`
}

// ScheduleDTO problema de planificación y, tras resolver, la solución.
type ScheduleDTO struct {
	ProductionLines []ProductionLineDTO `json:"productionLines" validate:"required,min=1,dive"`
	Orders          []OrderDTO          `json:"orders" validate:"required,min=1,dive"`
	Score           *score.Score        `json:"score" swaggertype:"string" example:"0hard/-120medium/-340soft"`
}

// SolveAsyncResponse identificador del trabajo asíncrono.
type SolveAsyncResponse struct {
	JobID string `json:"jobId"`
}

// StatusResponse estado de un trabajo y la mejor solución conocida.
type StatusResponse struct {
	JobID    string       `json:"jobId"`
	Status   string       `json:"status" example:"SOLVING_ACTIVE"`
	Solution *ScheduleDTO `json:"solution"`
	Error    string       `json:"error,omitempty"`
}

// StopResponse confirmación de terminación.
type StopResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// ConstraintMatchDTO activación de una regla en una orden.
type ConstraintMatchDTO struct {
	OrderID string      `json:"orderId"`
	Score   score.Score `json:"score" swaggertype:"string"`
}

// ConstraintSummaryDTO total por regla.
type ConstraintSummaryDTO struct {
	Name       string               `json:"name"`
	Tier       string               `json:"tier"`
	Score      score.Score          `json:"score" swaggertype:"string"`
	MatchCount int                  `json:"matchCount"`
	Matches    []ConstraintMatchDTO `json:"matches"`
}

// ScoreAnalysisResponse desglose del puntaje de un plan.
type ScoreAnalysisResponse struct {
	Score       score.Score            `json:"score" swaggertype:"string"`
	Feasible    bool                   `json:"feasible"`
	Constraints []ConstraintSummaryDTO `json:"constraints"`
}

// ToScoreAnalysis mapea el análisis del motor.
func ToScoreAnalysis(a scoring.Analysis) ScoreAnalysisResponse {
	out := ScoreAnalysisResponse{
		Score:       a.Score,
		Feasible:    a.Score.IsFeasible(),
		Constraints: make([]ConstraintSummaryDTO, 0, len(a.Rules)),
	}
	for _, r := range a.Rules {
		sum := ConstraintSummaryDTO{
			Name:       r.Name,
			Tier:       r.Tier.String(),
			Score:      r.Score,
			MatchCount: len(r.Matches),
			Matches:    make([]ConstraintMatchDTO, 0, len(r.Matches)),
		}
		for _, m := range r.Matches {
			sum.Matches = append(sum.Matches, ConstraintMatchDTO{OrderID: m.OrderID, Score: m.Score})
		}
		out.Constraints = append(out.Constraints, sum)
	}
	return out
}

// SolutionSummaryDTO cabecera de una solución persistida.
type SolutionSummaryDTO struct {
	JobID     string      `json:"jobId"`
	Status    string      `json:"status" example:"NOT_SOLVING"`
	Score     score.Score `json:"score" swaggertype:"string" example:"0hard/-3medium/-120soft"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// SolutionListResponse página de soluciones persistidas.
type SolutionListResponse struct {
	Items []SolutionSummaryDTO `json:"items"`
	Page  PageResponse         `json:"page"`
}
