package scoring

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Planificador-api/internal/domain"
)

// PairSeparator separa los modelos en la clave de un par preferido: "PREV|CURR".
const PairSeparator = "|"

// LinePreference un modelo cuyo código contiene Marker debería producirse en la línea LineCode.
type LinePreference struct {
	Marker   string
	LineCode string
	Penalty  int64 // magnitud positiva; se aplica como penalización soft
}

// Config tablas de negocio que varían por planta. Se inyecta al construir el Engine.
type Config struct {
	// ChangeoverPenalty penalización soft cuando la predecesora cambia de modelo o de fórmula.
	ChangeoverPenalty int64
	// PreferredPairs recompensa soft por pares adyacentes "PREV|CURR" (el orden importa).
	PreferredPairs map[string]int64
	// LinePreferences una regla soft por entrada.
	LinePreferences []LinePreference
}

// PairKey clave de par adyacente.
func PairKey(prev, curr string) string { return prev + PairSeparator + curr }

// DefaultConfig tablas de la planta original.
func DefaultConfig() Config {
	pairs := [][2]string{
		{"T10ESY", "T61ESYH"},
		{"T29DJY", "T29DJX"},
		{"T42DJX", "T9EST"},
		{"T29DJX", "T42DJX"},
		{"T29QDJY", "T29DJY"},
		{"T24DJX", "T24DJY"},
	}
	preferred := make(map[string]int64, len(pairs)*2)
	for _, p := range pairs {
		preferred[PairKey(p[0], p[1])] = 10
		preferred[PairKey(p[1], p[0])] = 10
	}
	return Config{
		ChangeoverPenalty: 10,
		PreferredPairs:    preferred,
		LinePreferences: []LinePreference{
			{Marker: "QDJY", LineCode: "LINE_2", Penalty: 5},
			{Marker: "ESYH", LineCode: "LINE_4", Penalty: 5},
		},
	}
}

// Validate revisa que las tablas sean coherentes.
func (c Config) Validate() error {
	if c.ChangeoverPenalty < 0 {
		return fmt.Errorf("%w: changeover_penalty negativo", domain.ErrInvalidInput)
	}
	for key, reward := range c.PreferredPairs {
		parts := strings.Split(key, PairSeparator)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("%w: par preferido %q, se espera PREV|CURR", domain.ErrInvalidInput, key)
		}
		if reward <= 0 {
			return fmt.Errorf("%w: la recompensa de %q debe ser positiva", domain.ErrInvalidInput, key)
		}
	}
	for _, p := range c.LinePreferences {
		if p.Marker == "" || p.LineCode == "" {
			return fmt.Errorf("%w: preferencia de línea incompleta", domain.ErrInvalidInput)
		}
		if p.Penalty <= 0 {
			return fmt.Errorf("%w: la penalización de %s debe ser positiva", domain.ErrInvalidInput, p.Marker)
		}
	}
	return nil
}
