package dto_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Planificador-api/internal/application/dto"
	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
)

func loadDemo(t *testing.T) dto.ScheduleDTO {
	t.Helper()
	raw, err := os.ReadFile("testdata/demo_problem.json")
	require.NoError(t, err)
	var p dto.ScheduleDTO
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// LocalDateTime
// ──────────────────────────────────────────────────────────────────────────────

func TestLocalDateTime_AceptaMinutosYSegundos(t *testing.T) {
	want := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-03-01T08:00", "2026-03-01T08:00:00", "2026-03-01T08:00:00Z"} {
		got, err := dto.ParseLocalDateTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got.Time), in)
	}
	_, err := dto.ParseLocalDateTime("01/03/2026")
	assert.Error(t, err)
}

func TestLocalDateTime_JSON(t *testing.T) {
	v := dto.LocalDateTime{Time: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)}
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T10:30:00"`, string(raw))

	var p struct {
		At *dto.LocalDateTime `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &p))
	assert.Nil(t, p.At)
}

func TestLocalDateTime_DesplazamientoSeNormalizaAUTC(t *testing.T) {
	in, err := dto.ParseLocalDateTime("2026-03-01T08:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC), in.Time)
	assert.Equal(t, time.UTC, in.Location())

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T06:00:00"`, string(raw))

	var back dto.LocalDateTime
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, in.Equal(back.Time))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo
// ──────────────────────────────────────────────────────────────────────────────

func TestToSchedule_EspesorNegativoYDuracionCero(t *testing.T) {
	p := loadDemo(t)
	p.Orders[0].Thickness = -2.5
	p.Orders[1].ProductionDurationHours = 0
	s, err := p.ToSchedule()
	require.NoError(t, err)
	assert.Equal(t, -2.5, s.Order(p.Orders[0].ID).Thickness)
	assert.Equal(t, time.Duration(0), s.Order(p.Orders[1].ID).ProductionDuration())
}

func TestToSchedule_Demo(t *testing.T) {
	p := loadDemo(t)
	s, err := p.ToSchedule()
	require.NoError(t, err)
	assert.Equal(t, 10, s.OrderCount())
	assert.Len(t, s.Lines(), 2)
	assert.Len(t, s.UnassignedOrders(), 10)

	o := s.Order("DEMO_009")
	require.NotNil(t, o)
	assert.Equal(t, []string{"LINE_2"}, o.CompatibleLines)
	assert.True(t, decimal.NewFromInt(60).Equal(o.CurrentInventory))
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), o.ExpectedStartTime)
}

func TestFromSchedule_CamposDerivadosNulos(t *testing.T) {
	p := loadDemo(t)
	s, err := p.ToSchedule()
	require.NoError(t, err)

	raw, err := json.Marshal(dto.FromSchedule(s))
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	first := generic["orders"].([]any)[0].(map[string]any)
	for _, k := range []string{"assignedLine", "sequenceIndex", "previousOrder", "startTime", "endTime"} {
		v, ok := first[k]
		assert.True(t, ok, "falta %s", k)
		assert.Nil(t, v, k)
	}
	assert.Equal(t, "0hard/0medium/0soft", generic["score"])
	assert.IsType(t, float64(0), first["currentInventory"])
	assert.IsType(t, float64(0), first["monthlyShipment"])
}

func TestMapeo_IdaYVueltaSinPerdida(t *testing.T) {
	p := loadDemo(t)
	p.ProductionLines[0].Orders = []string{"DEMO_005", "DEMO_001", "DEMO_003"}
	p.ProductionLines[1].Orders = []string{"DEMO_009", "DEMO_002"}
	s, err := p.ToSchedule()
	require.NoError(t, err)
	s.SetScore(scoring.NewEngine(scoring.DefaultConfig()).Calculate(s))

	first, err := json.Marshal(dto.FromSchedule(s))
	require.NoError(t, err)

	var back dto.ScheduleDTO
	require.NoError(t, json.Unmarshal(first, &back))
	s2, err := back.ToSchedule()
	require.NoError(t, err)
	s2.SetScore(*back.Score)
	second, err := json.Marshal(dto.FromSchedule(s2))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))

	out := dto.FromSchedule(s2)
	var o dto.OrderDTO
	for _, cand := range out.Orders {
		if cand.ID == "DEMO_001" {
			o = cand
		}
	}
	require.NotNil(t, o.AssignedLine)
	assert.Equal(t, "LINE_1", *o.AssignedLine)
	assert.Equal(t, 1, *o.SequenceIndex)
	assert.Equal(t, "DEMO_005", *o.PreviousOrder)
	// DEMO_005 dura 22h desde 2026-03-01T08:00
	assert.Equal(t, time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC), o.StartTime.Time)
	assert.Equal(t, time.Date(2026, 3, 3, 6, 0, 0, 0, time.UTC), o.EndTime.Time)
}

func TestToSchedule_ErroresDeValidacion(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *dto.ScheduleDTO)
		want   error
	}{
		{"sin id de orden", func(p *dto.ScheduleDTO) { p.Orders[0].ID = "" }, domain.ErrInvalidInput},
		{"duración negativa", func(p *dto.ScheduleDTO) { p.Orders[1].ProductionDurationHours = -1 }, domain.ErrInvalidInput},
		{"sin líneas", func(p *dto.ScheduleDTO) { p.ProductionLines = nil }, domain.ErrInvalidInput},
		{"sin órdenes", func(p *dto.ScheduleDTO) { p.Orders = nil }, domain.ErrInvalidInput},
		{"línea sin disponibilidad", func(p *dto.ScheduleDTO) { p.ProductionLines[0].AvailableFrom = nil }, domain.ErrInvalidInput},
		{"inventario negativo", func(p *dto.ScheduleDTO) { p.Orders[2].CurrentInventory = decimal.NewFromInt(-1) }, domain.ErrInvalidInput},
		{"línea compatible desconocida", func(p *dto.ScheduleDTO) { p.Orders[3].CompatibleLines = []string{"LINE_9"} }, domain.ErrUnknownLine},
		{"orden duplicada", func(p *dto.ScheduleDTO) { p.Orders[4].ID = p.Orders[5].ID }, domain.ErrDuplicate},
		{"secuencia con orden inexistente", func(p *dto.ScheduleDTO) { p.ProductionLines[0].Orders = []string{"NOPE"} }, domain.ErrInvalidInput},
		{"orden en dos líneas", func(p *dto.ScheduleDTO) {
			p.ProductionLines[0].Orders = []string{"DEMO_001"}
			p.ProductionLines[1].Orders = []string{"DEMO_001"}
		}, domain.ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := loadDemo(t)
			tc.mutate(&p)
			_, err := p.ToSchedule()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestToScoreAnalysis(t *testing.T) {
	p := loadDemo(t)
	p.ProductionLines[0].Orders = []string{"DEMO_009"}
	s, err := p.ToSchedule()
	require.NoError(t, err)

	resp := dto.ToScoreAnalysis(scoring.NewEngine(scoring.DefaultConfig()).Explain(s))
	assert.Equal(t, score.Of(-1, 0, -5), resp.Score)
	assert.False(t, resp.Feasible)
	for _, c := range resp.Constraints {
		if c.Name == scoring.RuleLineCompatibility {
			assert.Equal(t, 1, c.MatchCount)
			assert.Equal(t, "DEMO_009", c.Matches[0].OrderID)
			assert.Equal(t, "hard", c.Tier)
		}
	}
}
