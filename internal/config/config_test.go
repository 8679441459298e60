package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/southpaw/internal/combo"
	"github.com/abhisek/southpaw/internal/progression"
)

// isolate points HOME at an empty directory so no real config is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, combo.Beginner, cfg.Difficulty())
	assert.Equal(t, progression.UnlockOnArsenal, cfg.Rules().Unlock)
}

func TestLoad_DefaultFileLocation(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "southpaw")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	writeConfig(t, dir, "workout:\n  rounds: 6\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workout.Rounds)
	assert.Equal(t, 5, cfg.Workout.CombosPerRound)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
db: /tmp/southpaw-test.db
log:
  level: debug
  format: json
combo:
  seed: 42
  difficulty: advanced
workout:
  rounds: 4
  combos_per_round: 8
store:
  keep_snapshots: 3
progression:
  unlock_rule: exam
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/southpaw-test.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, uint64(42), cfg.Combo.Seed)
	assert.Equal(t, combo.Advanced, cfg.Difficulty())
	assert.Equal(t, 4, cfg.Workout.Rounds)
	assert.Equal(t, 8, cfg.Workout.CombosPerRound)
	assert.Equal(t, 3, cfg.Store.KeepSnapshots)
	assert.Equal(t, progression.UnlockOnExam, cfg.Rules().Unlock)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "workout:\n  combos_per_round: 8\nlog:\n  level: info\n")

	t.Setenv("SOUTHPAW_WORKOUT_COMBOS_PER_ROUND", "2")
	t.Setenv("SOUTHPAW_LOG_LEVEL", "error")
	t.Setenv("SOUTHPAW_DB", "/tmp/env.db")
	t.Setenv("SOUTHPAW_COMBO_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workout.CombosPerRound)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/tmp/env.db", cfg.DB)
	assert.Equal(t, uint64(7), cfg.Combo.Seed)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "workout: [unclosed\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
combo:
  difficulty: expert
workout:
  rounds: 0
progression:
  unlock_rule: drill
`)

	_, err := Load(path)
	require.Error(t, err)
	// Every problem is reported.
	assert.Contains(t, err.Error(), "combo.difficulty")
	assert.Contains(t, err.Error(), "workout.rounds")
	assert.Contains(t, err.Error(), "progression.unlock_rule")
}

func TestLoad_WeightRange(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "combo:\n  weight_min: 2\n  weight_max: 4\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, combo.WeightRange{Min: 2, Max: 4}, cfg.WeightRange())

	t.Setenv("SOUTHPAW_COMBO_WEIGHT_MAX", "12")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Combo.WeightMax)
}

func TestLoad_RejectsBadWeightRange(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero min", "combo:\n  weight_min: 0\n"},
		{"max below min", "combo:\n  weight_min: 8\n  weight_max: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "combo.weight_min/weight_max")
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SOUTHPAW_DB", "db"},
		{"SOUTHPAW_LOG_FORMAT", "log.format"},
		{"SOUTHPAW_STORE_KEEP_SNAPSHOTS", "store.keep_snapshots"},
		{"SOUTHPAW_PROGRESSION_UNLOCK_RULE", "progression.unlock_rule"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
