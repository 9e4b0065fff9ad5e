package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

// Nombres de reglas.
const (
	RuleLineCompatibility    = "line-compatibility"
	RuleThicknessMonotonic   = "thickness-monotonicity"
	RuleInventoryPriority    = "inventory-priority"
	RuleExpectedStart        = "expected-start"
	RuleChangeover           = "changeover"
	RulePreferredPair        = "preferred-pair"
	RuleLinePreferencePrefix = "line-preference:"
)

// Rule regla independiente. Weigh devuelve el aporte firmado anclado en una orden asignada
// (0 si la regla no se activa). Solo depende de la orden, su predecesora, su sucesora y su línea.
type Rule struct {
	Name  string
	Tier  score.Tier
	Weigh func(o *entity.Order) int64
}

// Match una activación de regla.
type Match struct {
	Rule    string
	OrderID string
	Score   score.Score
}

// Evaluate evalúa la regla sobre todo el plan. Las órdenes sin asignar no aportan.
func (r Rule) Evaluate(s *entity.Schedule) []Match {
	var out []Match
	for _, o := range s.Orders() {
		if !o.IsAssigned() {
			continue
		}
		if d := r.Weigh(o); d != 0 {
			out = append(out, Match{Rule: r.Name, OrderID: o.ID, Score: score.OfTier(r.Tier, d)})
		}
	}
	return out
}

func buildRules(cfg Config) []Rule {
	rules := []Rule{
		{Name: RuleLineCompatibility, Tier: score.Hard, Weigh: lineCompatibility},
		{Name: RuleThicknessMonotonic, Tier: score.Hard, Weigh: thicknessMonotonicity},
		{Name: RuleInventoryPriority, Tier: score.Medium, Weigh: inventoryPriority},
		{Name: RuleExpectedStart, Tier: score.Soft, Weigh: expectedStartDeviation},
		{Name: RuleChangeover, Tier: score.Soft, Weigh: changeover(cfg.ChangeoverPenalty)},
		{Name: RulePreferredPair, Tier: score.Soft, Weigh: preferredPair(cfg.PreferredPairs)},
	}
	for _, p := range cfg.LinePreferences {
		rules = append(rules, Rule{
			Name:  RuleLinePreferencePrefix + p.Marker,
			Tier:  score.Soft,
			Weigh: linePreference(p),
		})
	}
	return rules
}

// ===== Hard =====

func lineCompatibility(o *entity.Order) int64 {
	if o.IsCompatibleWith(o.Line()) {
		return 0
	}
	return -1
}

// thicknessMonotonicity la orden es el centro del trío (prev, o, next).
// Un delta cero nunca cuenta como inversión.
func thicknessMonotonicity(o *entity.Order) int64 {
	prev, next := o.Previous(), o.Next()
	if prev == nil || next == nil {
		return 0
	}
	d1 := o.Thickness - prev.Thickness
	d2 := next.Thickness - o.Thickness
	if (d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0) {
		return -1
	}
	return 0
}

// ===== Medium =====

// inventoryPriority solo compara con la predecesora inmediata.
// Una orden sin despachos (cobertura infinita) nunca penaliza.
func inventoryPriority(o *entity.Order) int64 {
	prev := o.Previous()
	if prev == nil {
		return 0
	}
	prevDays, days := prev.InventorySupplyDays(), o.InventorySupplyDays()
	if prevDays == entity.InfiniteSupplyDays || days == entity.InfiniteSupplyDays {
		return 0
	}
	if prevDays <= days {
		return 0
	}
	return -int64(math.Round(prevDays - days))
}

// ===== Soft =====

func expectedStartDeviation(o *entity.Order) int64 {
	if o.ExpectedStartTime.IsZero() {
		return 0
	}
	start, ok := o.StartTime()
	if !ok || !start.After(o.ExpectedStartTime) {
		return 0
	}
	return -int64(start.Sub(o.ExpectedStartTime) / time.Minute)
}

func changeover(penalty int64) func(*entity.Order) int64 {
	return func(o *entity.Order) int64 {
		prev := o.Previous()
		if prev == nil {
			return 0
		}
		if prev.ProductCode != o.ProductCode || prev.FormulaCode != o.FormulaCode {
			return -penalty
		}
		return 0
	}
}

func preferredPair(pairs map[string]int64) func(*entity.Order) int64 {
	return func(o *entity.Order) int64 {
		prev := o.Previous()
		if prev == nil {
			return 0
		}
		return pairs[PairKey(prev.ProductCode, o.ProductCode)]
	}
}

func linePreference(p LinePreference) func(*entity.Order) int64 {
	return func(o *entity.Order) int64 {
		line := o.Line()
		if line == nil || !strings.Contains(o.ProductCode, p.Marker) || line.LineCode == p.LineCode {
			return 0
		}
		return -p.Penalty
	}
}
