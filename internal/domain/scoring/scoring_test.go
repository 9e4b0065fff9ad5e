package scoring_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

// neutral orden que no activa ninguna regla por sí sola: mismo modelo y fórmula,
// sin despachos (cobertura infinita) y sin fecha esperada.
func neutral(id string, thickness float64) *entity.Order {
	return &entity.Order{
		ID:                      id,
		ProductCode:             "T10ESY",
		FormulaCode:             "F001",
		Thickness:               thickness,
		CompatibleLines:         []string{"LINE_1", "LINE_2", "LINE_4"},
		ProductionDurationHours: 1,
	}
}

func lines() []*entity.Line {
	return []*entity.Line{
		entity.NewLine("LINE_1", "uno", "LINE_1", t0),
		entity.NewLine("LINE_2", "dos", "LINE_2", t0),
		entity.NewLine("LINE_4", "cuatro", "LINE_4", t0),
	}
}

// planOn construye un plan con todas las órdenes en secuencia sobre la línea indicada.
func planOn(t *testing.T, lineID string, orders ...*entity.Order) *entity.Schedule {
	t.Helper()
	s, err := entity.NewSchedule(lines(), orders)
	require.NoError(t, err)
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	require.NoError(t, s.Assign(lineID, ids...))
	return s
}

func engine() *scoring.Engine { return scoring.NewEngine(scoring.DefaultConfig()) }

// ──────────────────────────────────────────────────────────────────────────────
// Reglas hard
// ──────────────────────────────────────────────────────────────────────────────

func TestEspesor_DeltaCeroNoEsInversion(t *testing.T) {
	s := planOn(t, "LINE_1", neutral("A", 5), neutral("B", 5), neutral("C", 3))
	assert.Equal(t, score.Zero, engine().Calculate(s))
}

func TestEspesor_InversionPenalizaUnaVez(t *testing.T) {
	s := planOn(t, "LINE_1", neutral("A", 5), neutral("B", 3), neutral("C", 5))
	assert.Equal(t, score.Of(-1, 0, 0), engine().Calculate(s))
}

func TestEspesor_MonotonoSinPenalizacion(t *testing.T) {
	s := planOn(t, "LINE_1", neutral("A", 1), neutral("B", 2), neutral("C", 3), neutral("D", 3), neutral("E", 9))
	assert.Equal(t, int64(0), engine().Calculate(s).Hard)
}

func TestCompatibilidad_LineaNoPermitida(t *testing.T) {
	o := neutral("A", 1)
	o.CompatibleLines = []string{"LINE_2"}
	s := planOn(t, "LINE_1", o)
	assert.Equal(t, score.Of(-1, 0, 0), engine().Calculate(s))
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla medium
// ──────────────────────────────────────────────────────────────────────────────

func withSupply(o *entity.Order, inventory, shipment int64) *entity.Order {
	o.CurrentInventory = decimal.NewFromInt(inventory)
	o.MonthlyShipment = decimal.NewFromInt(shipment)
	return o
}

func TestInventario_UrgenteDespuesDeMenosUrgente(t *testing.T) {
	relaxed := withSupply(neutral("A", 1), 300, 30) // 300 días
	urgent := withSupply(neutral("B", 1), 100, 30)  // 100 días
	s := planOn(t, "LINE_1", relaxed, urgent)
	assert.Equal(t, score.Of(0, -200, 0), engine().Calculate(s))
}

func TestInventario_OrdenCorrectoNoPenaliza(t *testing.T) {
	urgent := withSupply(neutral("A", 1), 100, 30)
	relaxed := withSupply(neutral("B", 1), 300, 30)
	s := planOn(t, "LINE_1", urgent, relaxed)
	assert.Equal(t, score.Zero, engine().Calculate(s))
}

func TestInventario_CoberturaInfinitaNuncaPenaliza(t *testing.T) {
	never := withSupply(neutral("A", 1), 300, 0)
	urgent := withSupply(neutral("B", 1), 1, 30)
	assert.Equal(t, score.Zero, engine().Calculate(planOn(t, "LINE_1", never, urgent)))

	never2 := withSupply(neutral("C", 1), 300, 0)
	urgent2 := withSupply(neutral("D", 1), 1, 30)
	assert.Equal(t, score.Zero, engine().Calculate(planOn(t, "LINE_1", urgent2, never2)))
}

func TestInventario_SoloParesAdyacentes(t *testing.T) {
	a := withSupply(neutral("A", 1), 300, 30) // 300
	b := withSupply(neutral("B", 1), 100, 30) // 100 → -200
	c := withSupply(neutral("C", 1), 200, 30) // 200 → sin penalización contra B
	s := planOn(t, "LINE_1", a, b, c)
	assert.Equal(t, int64(-200), engine().Calculate(s).Medium)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas soft
// ──────────────────────────────────────────────────────────────────────────────

func TestInicioEsperado_MinutosDeRetraso(t *testing.T) {
	first := neutral("A", 2)
	first.ProductionDurationHours = 2
	late := neutral("B", 1)
	late.ExpectedStartTime = t0.Add(30 * time.Minute) // arranca en t0+2h → 90 minutos tarde
	early := neutral("C", 1)
	early.ExpectedStartTime = t0.Add(10 * time.Hour)
	s := planOn(t, "LINE_1", first, late, early)
	assert.Equal(t, score.Of(0, 0, -90), engine().Calculate(s))
}

func TestCambioDeModelo_Penaliza(t *testing.T) {
	a := neutral("A", 1)
	b := neutral("B", 1)
	b.ProductCode = "T9EST"
	assert.Equal(t, score.Of(0, 0, -10), engine().Calculate(planOn(t, "LINE_1", a, b)))

	c := neutral("C", 1)
	d := neutral("D", 1)
	d.FormulaCode = "F002"
	assert.Equal(t, score.Of(0, 0, -10), engine().Calculate(planOn(t, "LINE_1", c, d)))
}

func TestParPreferido_CompensaCambio(t *testing.T) {
	a := neutral("A", 1)
	a.ProductCode = "T29DJY"
	b := neutral("B", 1)
	b.ProductCode = "T29DJX"
	b.FormulaCode = "F002"
	s := planOn(t, "LINE_1", a, b)

	e := engine()
	assert.Equal(t, score.Zero, e.Calculate(s), "cambio -10 + par preferido +10 = 0")

	analysis := e.Explain(s)
	byRule := map[string]score.Score{}
	for _, r := range analysis.Rules {
		byRule[r.Name] = r.Score
	}
	assert.Equal(t, score.Of(0, 0, -10), byRule[scoring.RuleChangeover])
	assert.Equal(t, score.Of(0, 0, 10), byRule[scoring.RulePreferredPair])
}

func TestParPreferido_ElOrdenImporta(t *testing.T) {
	cfg := scoring.Config{
		ChangeoverPenalty: 10,
		PreferredPairs:    map[string]int64{scoring.PairKey("AAA", "BBB"): 10},
	}
	a := neutral("A", 1)
	a.ProductCode = "BBB"
	b := neutral("B", 1)
	b.ProductCode = "AAA"
	s := planOn(t, "LINE_1", a, b) // BBB → AAA, no está en la lista
	assert.Equal(t, score.Of(0, 0, -10), scoring.NewEngine(cfg).Calculate(s))
}

func TestPreferenciaDeLinea(t *testing.T) {
	qdjy := neutral("A", 1)
	qdjy.ProductCode = "T29QDJY"
	assert.Equal(t, score.Of(0, 0, -5), engine().Calculate(planOn(t, "LINE_1", qdjy)))

	qdjyOk := neutral("B", 1)
	qdjyOk.ProductCode = "T29QDJY"
	assert.Equal(t, score.Zero, engine().Calculate(planOn(t, "LINE_2", qdjyOk)))

	esyh := neutral("C", 1)
	esyh.ProductCode = "T61ESYH"
	assert.Equal(t, score.Of(0, 0, -5), engine().Calculate(planOn(t, "LINE_2", esyh)))

	esyhOk := neutral("D", 1)
	esyhOk.ProductCode = "T61ESYH"
	assert.Equal(t, score.Zero, engine().Calculate(planOn(t, "LINE_4", esyhOk)))
}

func TestSinAsignar_NoAporta(t *testing.T) {
	bad := neutral("A", 1)
	bad.CompatibleLines = []string{"LINE_2"}
	bad.ProductCode = "T29QDJY"
	bad.ExpectedStartTime = t0.Add(-24 * time.Hour)
	s, err := entity.NewSchedule(lines(), []*entity.Order{bad, neutral("B", 1)})
	require.NoError(t, err)

	e := engine()
	assert.Equal(t, score.Zero, e.Calculate(s))
	for _, r := range e.Explain(s).Rules {
		assert.Empty(t, r.Matches, "la regla %s no debe activarse con órdenes sin asignar", r.Name)
	}
}

func TestExplain_SumaIgualACalculate(t *testing.T) {
	s := randomPlan(t, rand.New(rand.NewPCG(1, 2)), 20)
	e := engine()
	assert.Equal(t, e.Calculate(s), e.Explain(s).Score)
}

// ──────────────────────────────────────────────────────────────────────────────
// Incremental vs. completo
// ──────────────────────────────────────────────────────────────────────────────

var products = []string{"T10ESY", "T61ESYH", "T29DJY", "T29DJX", "T42DJX", "T9EST", "T29QDJY", "T24DJX"}

func randomPlan(t *testing.T, r *rand.Rand, n int) *entity.Schedule {
	t.Helper()
	orders := make([]*entity.Order, 0, n)
	for i := 0; i < n; i++ {
		o := &entity.Order{
			ID:                      string(rune('a' + i)),
			ProductCode:             products[r.IntN(len(products))],
			FormulaCode:             []string{"F001", "F002"}[r.IntN(2)],
			Thickness:               float64(100 + r.IntN(5)*25),
			CurrentInventory:        decimal.NewFromInt(int64(r.IntN(300))),
			MonthlyShipment:         decimal.NewFromInt(int64(r.IntN(4) * 50)),
			ExpectedStartTime:       t0.Add(time.Duration(r.IntN(72)) * time.Hour),
			CompatibleLines:         []string{"LINE_1", "LINE_2", "LINE_4"}[:1+r.IntN(3)],
			ProductionDurationHours: float64(1+r.IntN(20)) / 3,
		}
		orders = append(orders, o)
	}
	s, err := entity.NewSchedule(lines(), orders)
	require.NoError(t, err)
	for _, o := range s.Orders() {
		if r.IntN(5) == 0 {
			continue
		}
		l := s.Lines()[r.IntN(3)]
		_, err := s.Apply(entity.Move{Order: o, Line: l, Position: r.IntN(l.Len() + 1)})
		require.NoError(t, err)
	}
	return s
}

func randomMove(r *rand.Rand, s *entity.Schedule) entity.Move {
	orders := s.Orders()
	o := orders[r.IntN(len(orders))]
	if r.IntN(8) == 0 {
		return entity.Move{Order: o}
	}
	l := s.Lines()[r.IntN(3)]
	limit := l.Len()
	if o.Line() == l {
		limit--
	}
	return entity.Move{Order: o, Line: l, Position: r.IntN(limit + 1)}
}

func TestTracker_IncrementalIgualACompleto(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 99))
	s := randomPlan(t, r, 18)
	e := engine()
	tracker := e.NewTracker(s)
	require.Equal(t, e.Calculate(s), tracker.Score())

	for i := 0; i < 1000; i++ {
		ch, err := s.Apply(randomMove(r, s))
		require.NoError(t, err)
		got := tracker.Refresh(ch.Touched)
		require.Equal(t, e.Calculate(s), got, "paso %d", i)
	}
}

func TestTracker_MovimientoEInversoRestauranPuntaje(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 8))
	s := randomPlan(t, r, 15)
	tracker := engine().NewTracker(s)

	for i := 0; i < 300; i++ {
		before := tracker.Score()
		ch, err := s.Apply(randomMove(r, s))
		require.NoError(t, err)
		tracker.Refresh(ch.Touched)
		back, err := s.Apply(ch.Inverse())
		require.NoError(t, err)
		require.Equal(t, before, tracker.Refresh(back.Touched), "paso %d", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, scoring.DefaultConfig().Validate())

	bad := scoring.DefaultConfig()
	bad.PreferredPairs = map[string]int64{"SINSEPARADOR": 10}
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = scoring.DefaultConfig()
	bad.LinePreferences = append(bad.LinePreferences, scoring.LinePreference{Marker: "X"})
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = scoring.DefaultConfig()
	bad.ChangeoverPenalty = -1
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = scoring.DefaultConfig()
	bad.PreferredPairs[scoring.PairKey("AAA", "BBB")] = 0
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = scoring.DefaultConfig()
	bad.LinePreferences[0].Penalty = 0
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)
}

func TestDefaultConfig_ParesSimetricos(t *testing.T) {
	cfg := scoring.DefaultConfig()
	assert.Len(t, cfg.PreferredPairs, 12)
	assert.Equal(t, int64(10), cfg.PreferredPairs["T10ESY|T61ESYH"])
	assert.Equal(t, int64(10), cfg.PreferredPairs["T61ESYH|T10ESY"])
	assert.Len(t, engine().Rules(), 8)
}
