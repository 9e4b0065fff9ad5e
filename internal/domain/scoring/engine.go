// Package scoring implementa el motor de restricciones hard/medium/soft del planificador.
//
// Cada regla es una función pura anclada en una orden asignada; el puntaje de un plan es la
// suma de los aportes de todas las órdenes. Esto permite dos modos equivalentes:
//
//   - Engine.Calculate: recálculo completo del plan.
//   - Tracker.Refresh: recálculo incremental de solo las órdenes tocadas por un movimiento.
package scoring

import (
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

// Engine evalúa planes con un conjunto fijo de reglas.
type Engine struct {
	cfg   Config
	rules []Rule
}

// NewEngine construye el motor con las tablas de negocio de la planta.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, rules: buildRules(cfg)}
}

// Config tablas con las que se construyó el motor.
func (e *Engine) Config() Config { return e.cfg }

// Rules reglas en orden de evaluación.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// OrderScore suma de los aportes de todas las reglas ancladas en la orden.
// Una orden sin asignar aporta cero.
func (e *Engine) OrderScore(o *entity.Order) score.Score {
	if !o.IsAssigned() {
		return score.Zero
	}
	var acc [3]int64
	for _, r := range e.rules {
		acc[r.Tier] += r.Weigh(o)
	}
	return score.Of(acc[score.Hard], acc[score.Medium], acc[score.Soft])
}

// Calculate recálculo completo.
func (e *Engine) Calculate(s *entity.Schedule) score.Score {
	total := score.Zero
	for _, o := range s.Orders() {
		total = total.Add(e.OrderScore(o))
	}
	return total
}

// RuleSummary total de una regla en un plan.
type RuleSummary struct {
	Name    string
	Tier    score.Tier
	Score   score.Score
	Matches []Match
}

// Analysis desglose del puntaje por regla.
type Analysis struct {
	Score score.Score
	Rules []RuleSummary
}

// Explain evalúa cada regla por separado. La suma de los totales coincide con Calculate.
func (e *Engine) Explain(s *entity.Schedule) Analysis {
	a := Analysis{Rules: make([]RuleSummary, 0, len(e.rules))}
	for _, r := range e.rules {
		sum := RuleSummary{Name: r.Name, Tier: r.Tier, Matches: r.Evaluate(s)}
		for _, m := range sum.Matches {
			sum.Score = sum.Score.Add(m.Score)
		}
		a.Score = a.Score.Add(sum.Score)
		a.Rules = append(a.Rules, sum)
	}
	return a
}
