package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Planificador-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Solver.TimeLimit)
	assert.Equal(t, 5*time.Second, cfg.Solver.UnimprovedLimit)
	assert.Equal(t, 2, cfg.Solver.ParallelJobs)
	assert.Equal(t, uint64(42), cfg.Solver.Seed)
	assert.False(t, cfg.Solver.FullAssert())
	assert.False(t, cfg.DB.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOLVER_TIME_LIMIT_SECONDS", "7")
	t.Setenv("SOLVER_PARALLEL_JOBS", "4")
	t.Setenv("SOLVER_ENVIRONMENT_MODE", "full_assert")
	t.Setenv("DB_HOST", "db")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Solver.TimeLimit)
	assert.Equal(t, 4, cfg.Solver.ParallelJobs)
	assert.True(t, cfg.Solver.FullAssert())
	assert.True(t, cfg.DB.Enabled())
	assert.Contains(t, cfg.DB.ConnectionString(), "@db:5432/planificador")
}

func TestLoad_ModoInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOLVER_ENVIRONMENT_MODE", "rapido")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadScoringRules_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
changeover_penalty: 15
preferred_pairs:
  - prev: T29DJY
    curr: T29DJX
    reward: 10
    symmetric: true
line_preferences:
  - marker: QDJY
    line_code: LINE_2
    penalty: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := config.LoadScoringRules(path)
	require.NoError(t, err)
	assert.Equal(t, int64(15), rules.ChangeoverPenalty)
	require.Len(t, rules.PreferredPairs, 1)
	pair := rules.PreferredPairs[0]
	assert.Equal(t, "T29DJY", pair.Prev)
	assert.Equal(t, "T29DJX", pair.Curr)
	assert.True(t, pair.Symmetric)
	require.NotNil(t, pair.Reward)
	assert.Equal(t, int64(10), *pair.Reward)
	require.Len(t, rules.LinePreferences, 1)
	assert.Equal(t, "LINE_2", rules.LinePreferences[0].LineCode)
}

func TestLoadScoringRules_JSONConPenalizacionPorDefecto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"preferred_pairs":[]}`), 0o600))
	rules, err := config.LoadScoringRules(path)
	require.NoError(t, err)
	assert.Equal(t, int64(10), rules.ChangeoverPenalty)
}

func TestLoadScoringRules_ArchivoInexistente(t *testing.T) {
	_, err := config.LoadScoringRules(filepath.Join(t.TempDir(), "no.yaml"))
	assert.Error(t, err)
}
