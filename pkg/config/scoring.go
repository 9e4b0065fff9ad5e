package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
)

// Magnitudes que se usan cuando una entrada del archivo no las indica.
const (
	DefaultChangeoverPenalty int64 = 10
	DefaultPairReward        int64 = 10
	DefaultLinePenalty       int64 = 5
)

// PairRule par preferido de modelos adyacentes. Symmetric agrega también CURR|PREV.
// Reward nil = DefaultPairReward.
type PairRule struct {
	Prev      string `mapstructure:"prev"`
	Curr      string `mapstructure:"curr"`
	Reward    *int64 `mapstructure:"reward"`
	Symmetric bool   `mapstructure:"symmetric"`
}

// LineRule un modelo que contiene Marker debería producirse en LineCode.
// Penalty nil = DefaultLinePenalty.
type LineRule struct {
	Marker   string `mapstructure:"marker"`
	LineCode string `mapstructure:"line_code"`
	Penalty  *int64 `mapstructure:"penalty"`
}

// ScoringRules tablas de puntuación de la planta, leídas de SCORING_RULES_FILE.
type ScoringRules struct {
	ChangeoverPenalty int64      `mapstructure:"changeover_penalty"`
	PreferredPairs    []PairRule `mapstructure:"preferred_pairs"`
	LinePreferences   []LineRule `mapstructure:"line_preferences"`
}

// LoadScoringRules lee las tablas desde un archivo YAML o JSON (el formato sale de la extensión).
func LoadScoringRules(path string) (*ScoringRules, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("changeover_penalty", DefaultChangeoverPenalty)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: leer reglas de puntuación %s: %w", path, err)
	}
	var rules ScoringRules
	if err := v.Unmarshal(&rules); err != nil {
		return nil, fmt.Errorf("config: decodificar reglas de puntuación %s: %w", path, err)
	}
	return &rules, nil
}

// EngineConfig traduce las tablas a la configuración del motor y la valida.
// Una recompensa o penalización explícita en cero o negativa es un error.
func (r *ScoringRules) EngineConfig() (scoring.Config, error) {
	out := scoring.Config{
		ChangeoverPenalty: r.ChangeoverPenalty,
		PreferredPairs:    make(map[string]int64, len(r.PreferredPairs)*2),
		LinePreferences:   make([]scoring.LinePreference, 0, len(r.LinePreferences)),
	}
	for _, p := range r.PreferredPairs {
		reward := valueOr(p.Reward, DefaultPairReward)
		out.PreferredPairs[scoring.PairKey(p.Prev, p.Curr)] = reward
		if p.Symmetric {
			out.PreferredPairs[scoring.PairKey(p.Curr, p.Prev)] = reward
		}
	}
	for _, l := range r.LinePreferences {
		out.LinePreferences = append(out.LinePreferences, scoring.LinePreference{
			Marker:   l.Marker,
			LineCode: l.LineCode,
			Penalty:  valueOr(l.Penalty, DefaultLinePenalty),
		})
	}
	if err := out.Validate(); err != nil {
		return scoring.Config{}, fmt.Errorf("config: reglas de puntuación: %w", err)
	}
	return out, nil
}

func valueOr(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}
