package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/action"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 100, cfg.Economy.MaxEnergy)
	assert.Equal(t, 1, cfg.Economy.EncounterCost)
	assert.Equal(t, 1500*time.Millisecond, cfg.Dialogue.CorrectFeedback)
	assert.Equal(t, 500*time.Millisecond, cfg.Save.Debounce)
	assert.Equal(t, 20, cfg.Save.KeepSnapshots)

	keys := cfg.KeyBindings()
	assert.Equal(t, []string{"enter", "space"}, keys[action.Confirm])
	assert.Equal(t, []string{"t"}, keys[action.ToggleTranslation])
	assert.Len(t, keys, len(action.All()))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kotoba.yaml")
	yaml := `
log:
  level: debug
  format: json
economy:
  max_energy: 30
  start_energy: 30
  encounter_cost: 2
dialogue:
  correct_feedback: 2s
  wrong_feedback: 750ms
keys:
  confirm: "x, enter"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30, cfg.EconomyConfig().MaxEnergy)
	assert.Equal(t, 2, cfg.EconomyConfig().EncounterCost)
	assert.Equal(t, 2*time.Second, cfg.Timing().CorrectFeedback)
	assert.Equal(t, 750*time.Millisecond, cfg.Timing().WrongFeedback)
	assert.Equal(t, []string{"x", "enter"}, cfg.KeyBindings()[action.Confirm])
	assert.Equal(t, []string{"esc", "backspace"}, cfg.KeyBindings()[action.Cancel])
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KOTOBA_LOG_LEVEL", "warn")
	t.Setenv("KOTOBA_ECONOMY_ENCOUNTER_COST", "3")
	t.Setenv("KOTOBA_KEYS_NAVIGATE_UP", "i")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Economy.EncounterCost)
	assert.Equal(t, []string{"i"}, cfg.KeyBindings()[action.NavigateUp])
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KOTOBA_SAVE_KEEP_SNAPSHOTS=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("KOTOBA_SAVE_KEEP_SNAPSHOTS") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Save.KeepSnapshots)
}

func TestLoad_Flags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KOTOBA_DB_PATH", "/from/env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DB.Path)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("", nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"zero max energy", func(c *Config) { c.Economy.MaxEnergy = 0 }, "economy.max_energy"},
		{"start above max", func(c *Config) { c.Economy.StartEnergy = c.Economy.MaxEnergy + 1 }, "economy.start_energy"},
		{"negative cost", func(c *Config) { c.Economy.EncounterCost = -1 }, "economy.encounter_cost"},
		{"zero feedback", func(c *Config) { c.Dialogue.WrongFeedback = 0 }, "dialogue.wrong_feedback"},
		{"no snapshots kept", func(c *Config) { c.Save.KeepSnapshots = 0 }, "save.keep_snapshots"},
		{"unknown action", func(c *Config) { c.Keys = map[string]string{"jump": "j"} }, "keys.jump"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			cfg.Keys = map[string]string{}
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.problem)
		})
	}
}
