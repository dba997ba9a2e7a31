// Package config loads kotoba's settings from defaults, an optional YAML
// file, a .env file and KOTOBA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/kotoba/internal/action"
	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/economy"
	"github.com/abhisek/kotoba/internal/input"
)

// EnvPrefix prefixes every environment override, e.g. KOTOBA_LOG_LEVEL.
const EnvPrefix = "KOTOBA"

// Config holds all configuration for the application.
type Config struct {
	DB       DBConfig          `mapstructure:"db"`
	Log      LogConfig         `mapstructure:"log"`
	Economy  EconomyConfig     `mapstructure:"economy"`
	Dialogue DialogueConfig    `mapstructure:"dialogue"`
	Content  ContentConfig     `mapstructure:"content"`
	Save     SaveConfig        `mapstructure:"save"`
	Keys     map[string]string `mapstructure:"keys"`
}

// DBConfig holds database configuration.
type DBConfig struct {
	// Path is the sqlite file. Empty selects the XDG data directory.
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// File receives log output while the TUI owns the terminal. Empty
	// selects the XDG state directory.
	File string `mapstructure:"file"`
}

// EconomyConfig holds the energy and currency tuning.
type EconomyConfig struct {
	MaxEnergy        int `mapstructure:"max_energy"`
	StartEnergy      int `mapstructure:"start_energy"`
	EncounterCost    int `mapstructure:"encounter_cost"`
	DefaultQuizBonus int `mapstructure:"default_quiz_bonus"`
}

// DialogueConfig holds quiz feedback durations.
type DialogueConfig struct {
	CorrectFeedback time.Duration `mapstructure:"correct_feedback"`
	WrongFeedback   time.Duration `mapstructure:"wrong_feedback"`
}

// ContentConfig selects the content pack.
type ContentConfig struct {
	// Path to a JSON pack. Empty uses the embedded pack.
	Path string `mapstructure:"path"`
}

// SaveConfig controls snapshot persistence.
type SaveConfig struct {
	Debounce      time.Duration `mapstructure:"debounce"`
	KeepSnapshots int           `mapstructure:"keep_snapshots"`
}

// Load reads configuration. path names an explicit config file; when empty,
// kotoba.yaml is searched in the working directory and the XDG config
// directory and may be absent. flags, when non-nil, override file and
// environment values for the flags they define.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("kotoba")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "kotoba"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"db":        "db.path",
	"content":   "content.path",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	eco := economy.DefaultConfig()
	v.SetDefault("economy.max_energy", eco.MaxEnergy)
	v.SetDefault("economy.start_energy", eco.StartEnergy)
	v.SetDefault("economy.encounter_cost", eco.EncounterCost)
	v.SetDefault("economy.default_quiz_bonus", eco.DefaultQuizBonus)

	timing := dialogue.DefaultTiming()
	v.SetDefault("dialogue.correct_feedback", timing.CorrectFeedback)
	v.SetDefault("dialogue.wrong_feedback", timing.WrongFeedback)

	v.SetDefault("content.path", "")

	v.SetDefault("save.debounce", 500*time.Millisecond)
	v.SetDefault("save.keep_snapshots", 20)

	for a, keys := range input.DefaultKeys {
		v.SetDefault("keys."+string(a), strings.Join(keys, ","))
	}
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %v", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		add("log.format: must be text or json, got %q", c.Log.Format)
	}

	e := c.Economy
	if e.MaxEnergy <= 0 {
		add("economy.max_energy: must be positive")
	}
	if e.StartEnergy < 0 || e.StartEnergy > e.MaxEnergy {
		add("economy.start_energy: must be between 0 and max_energy")
	}
	if e.EncounterCost < 0 {
		add("economy.encounter_cost: must not be negative")
	}
	if e.DefaultQuizBonus < 0 {
		add("economy.default_quiz_bonus: must not be negative")
	}

	if c.Dialogue.CorrectFeedback <= 0 {
		add("dialogue.correct_feedback: must be positive")
	}
	if c.Dialogue.WrongFeedback <= 0 {
		add("dialogue.wrong_feedback: must be positive")
	}

	if c.Save.Debounce < 0 {
		add("save.debounce: must not be negative")
	}
	if c.Save.KeepSnapshots < 1 {
		add("save.keep_snapshots: must be at least 1")
	}

	for name := range c.Keys {
		if _, err := action.Parse(name); err != nil {
			add("keys.%s: %v", name, err)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// EconomyConfig converts the economy section for the ledger.
func (c *Config) EconomyConfig() economy.Config {
	return economy.Config{
		MaxEnergy:        c.Economy.MaxEnergy,
		StartEnergy:      c.Economy.StartEnergy,
		EncounterCost:    c.Economy.EncounterCost,
		DefaultQuizBonus: c.Economy.DefaultQuizBonus,
	}
}

// Timing converts the dialogue section for the controller.
func (c *Config) Timing() dialogue.Timing {
	return dialogue.Timing{
		CorrectFeedback: c.Dialogue.CorrectFeedback,
		WrongFeedback:   c.Dialogue.WrongFeedback,
	}
}

// KeyBindings returns the configured keys per action.
func (c *Config) KeyBindings() map[action.Action][]string {
	out := make(map[action.Action][]string, len(c.Keys))
	for name, keys := range c.Keys {
		a, err := action.Parse(name)
		if err != nil {
			continue
		}
		var list []string
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				list = append(list, k)
			}
		}
		out[a] = list
	}
	return out
}
