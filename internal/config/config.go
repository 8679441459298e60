// Package config loads southpaw configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/abhisek/southpaw/internal/combo"
	"github.com/abhisek/southpaw/internal/logging"
	"github.com/abhisek/southpaw/internal/progression"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SOUTHPAW_"

const maxConfigFileSize = 1024 * 1024 // 1MB

// Config is the full application configuration.
type Config struct {
	DB          string            `koanf:"db"`
	Log         logging.Config    `koanf:"log"`
	Combo       ComboConfig       `koanf:"combo"`
	Workout     WorkoutConfig     `koanf:"workout"`
	Store       StoreConfig       `koanf:"store"`
	Progression ProgressionConfig `koanf:"progression"`
}

// ComboConfig controls combo generation.
type ComboConfig struct {
	Seed       uint64 `koanf:"seed"` // 0 = random
	Difficulty string `koanf:"difficulty"`
	// Weighted generation repeats the target move weight_min..weight_max
	// times in each slot's draw pool.
	WeightMin int `koanf:"weight_min"`
	WeightMax int `koanf:"weight_max"`
}

// WorkoutConfig controls workout plan size.
type WorkoutConfig struct {
	Rounds         int `koanf:"rounds"`
	CombosPerRound int `koanf:"combos_per_round"`
}

// StoreConfig controls snapshot retention.
type StoreConfig struct {
	KeepSnapshots int `koanf:"keep_snapshots"`
}

// ProgressionConfig selects the unlock rule.
type ProgressionConfig struct {
	UnlockRule string `koanf:"unlock_rule"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: logging.DefaultConfig(),
		Combo: ComboConfig{
			Difficulty: string(combo.Beginner),
			WeightMin:  combo.DefaultWeightRange().Min,
			WeightMax:  combo.DefaultWeightRange().Max,
		},
		Workout: WorkoutConfig{
			Rounds:         3,
			CombosPerRound: 5,
		},
		Store: StoreConfig{
			KeepSnapshots: 10,
		},
		Progression: ProgressionConfig{
			UnlockRule: string(progression.UnlockOnArsenal),
		},
	}
}

// DefaultPath returns ~/.config/southpaw/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "southpaw", "config.yaml"), nil
}

// Load builds the configuration from defaults, then the YAML file at
// path, then SOUTHPAW_* environment variables.
//
// An empty path loads the default file if it exists. A non-empty path
// must exist.
//
// Environment variables map onto keys by splitting off the section at the
// first underscore:
//
//	SOUTHPAW_DB                        -> db
//	SOUTHPAW_LOG_LEVEL                 -> log.level
//	SOUTHPAW_WORKOUT_COMBOS_PER_ROUND  -> workout.combos_per_round
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	content, err := readConfigFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file is fine.
	default:
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// envKey maps SOUTHPAW_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Log.Validate(); err != nil {
		errs = append(errs, "log: "+err.Error())
	}
	if _, err := combo.ParseDifficulty(c.Combo.Difficulty); err != nil {
		errs = append(errs, "combo.difficulty: "+err.Error())
	}
	if err := c.WeightRange().Validate(); err != nil {
		errs = append(errs, "combo.weight_min/weight_max: "+err.Error())
	}
	if c.Workout.Rounds < 1 {
		errs = append(errs, fmt.Sprintf("workout.rounds must be >= 1, got %d", c.Workout.Rounds))
	}
	if c.Workout.CombosPerRound < 1 {
		errs = append(errs, fmt.Sprintf("workout.combos_per_round must be >= 1, got %d", c.Workout.CombosPerRound))
	}
	if c.Store.KeepSnapshots < 1 {
		errs = append(errs, fmt.Sprintf("store.keep_snapshots must be >= 1, got %d", c.Store.KeepSnapshots))
	}
	if _, err := progression.ParseUnlockRule(c.Progression.UnlockRule); err != nil {
		errs = append(errs, "progression.unlock_rule: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Difficulty returns the parsed default combo difficulty.
func (c *Config) Difficulty() combo.Difficulty {
	d, err := combo.ParseDifficulty(c.Combo.Difficulty)
	if err != nil {
		return combo.Beginner
	}
	return d
}

// WeightRange returns the configured weighted-generation range.
func (c *Config) WeightRange() combo.WeightRange {
	return combo.WeightRange{Min: c.Combo.WeightMin, Max: c.Combo.WeightMax}
}

// Rules returns the progression rules selected by the config.
func (c *Config) Rules() progression.Rules {
	rules := progression.DefaultRules()
	if r, err := progression.ParseUnlockRule(c.Progression.UnlockRule); err == nil {
		rules.Unlock = r
	}
	return rules
}
