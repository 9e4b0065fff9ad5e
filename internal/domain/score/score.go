// Package score define el puntaje de tres niveles (hard/medium/soft) del planificador.
//
// Un Score es un valor inmutable: todas las operaciones devuelven un nuevo Score.
// La comparación es lexicográfica: cualquier diferencia en hard domina a medium y soft,
// y medium domina a soft.
package score

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier nivel de severidad de una regla.
type Tier int

const (
	Hard Tier = iota
	Medium
	Soft
)

func (t Tier) String() string {
	switch t {
	case Hard:
		return "hard"
	case Medium:
		return "medium"
	case Soft:
		return "soft"
	}
	return "tier(" + strconv.Itoa(int(t)) + ")"
}

// Score puntaje hard/medium/soft. Penalizaciones negativas, recompensas positivas.
type Score struct {
	Hard   int64
	Medium int64
	Soft   int64
}

// Zero puntaje neutro.
var Zero = Score{}

// Of construye un Score.
func Of(hard, medium, soft int64) Score {
	return Score{Hard: hard, Medium: medium, Soft: soft}
}

// OfTier construye un Score con un único nivel distinto de cero.
func OfTier(t Tier, v int64) Score {
	switch t {
	case Hard:
		return Score{Hard: v}
	case Medium:
		return Score{Medium: v}
	default:
		return Score{Soft: v}
	}
}

// Add suma dos puntajes.
func (s Score) Add(o Score) Score {
	return Score{Hard: s.Hard + o.Hard, Medium: s.Medium + o.Medium, Soft: s.Soft + o.Soft}
}

// Sub resta o a s.
func (s Score) Sub(o Score) Score {
	return Score{Hard: s.Hard - o.Hard, Medium: s.Medium - o.Medium, Soft: s.Soft - o.Soft}
}

// Negate invierte el signo de los tres niveles.
func (s Score) Negate() Score {
	return Score{Hard: -s.Hard, Medium: -s.Medium, Soft: -s.Soft}
}

// Get devuelve el valor de un nivel.
func (s Score) Get(t Tier) int64 {
	switch t {
	case Hard:
		return s.Hard
	case Medium:
		return s.Medium
	default:
		return s.Soft
	}
}

// IsFeasible true si no hay violaciones hard.
func (s Score) IsFeasible() bool { return s.Hard >= 0 }

// IsZero true si los tres niveles son cero.
func (s Score) IsZero() bool { return s == Zero }

// Compare devuelve -1, 0 o 1 (s peor, igual o mejor que o).
func (s Score) Compare(o Score) int {
	switch {
	case s.Hard != o.Hard:
		return sign(s.Hard - o.Hard)
	case s.Medium != o.Medium:
		return sign(s.Medium - o.Medium)
	default:
		return sign(s.Soft - o.Soft)
	}
}

// BetterThan true si s es estrictamente mejor que o.
func (s Score) BetterThan(o Score) bool { return s.Compare(o) > 0 }

func sign(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// String formato "0hard/-12medium/-340soft".
func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dmedium/%dsoft", s.Hard, s.Medium, s.Soft)
}

// Parse interpreta el formato producido por String.
func Parse(text string) (Score, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return Zero, fmt.Errorf("score: formato inválido %q", text)
	}
	suffixes := [3]string{"hard", "medium", "soft"}
	var vals [3]int64
	for i, p := range parts {
		if !strings.HasSuffix(p, suffixes[i]) {
			return Zero, fmt.Errorf("score: se esperaba sufijo %q en %q", suffixes[i], p)
		}
		n, err := strconv.ParseInt(strings.TrimSuffix(p, suffixes[i]), 10, 64)
		if err != nil {
			return Zero, fmt.Errorf("score: nivel %s: %w", suffixes[i], err)
		}
		vals[i] = n
	}
	return Of(vals[0], vals[1], vals[2]), nil
}

// MarshalText serializa el puntaje en su forma textual (JSON string).
func (s Score) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText interpreta la forma textual.
func (s *Score) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
