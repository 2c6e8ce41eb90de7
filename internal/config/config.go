// Package config loads and saves revcalc settings and provides the
// scenario fixtures.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/revcalc/internal/revenue"
)

// Config holds all revcalc configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Projection ProjectionConfig `toml:"projection"`
	Server     ServerConfig     `toml:"server"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
	LokalAI    LokalAIConfig    `toml:"lokalai"`
	LiveAudio  LiveAudioConfig  `toml:"live_audio"`
	Scenarios  []ScenarioConfig `toml:"scenarios,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultScenario string `toml:"default_scenario"`
	LogLevel        string `toml:"log_level,omitempty"`
}

// ProjectionConfig controls monthly and yearly projections.
type ProjectionConfig struct {
	Clamp         bool    `toml:"clamp"`
	GrowthPercent float64 `toml:"growth_percent"`
	Years         int     `toml:"years"`
}

// ServerConfig holds daemon settings.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LokalAIConfig overrides the LokalAI tiers and cost assumptions.
type LokalAIConfig struct {
	Tiers           []revenue.Tier `toml:"tiers,omitempty"`
	OneTimeCost     float64        `toml:"one_time_cost"`
	OperationalCost float64        `toml:"operational_cost"`
}

// LiveAudioConfig overrides the live-audio package.
type LiveAudioConfig struct {
	Params      *revenue.LiveAudioParams `toml:"params,omitempty"`
	OneTimeCost float64                  `toml:"one_time_cost"`
}

// ScenarioConfig is a user-defined scenario.
type ScenarioConfig struct {
	Name        string         `toml:"name"`
	Description string         `toml:"description,omitempty"`
	Params      revenue.Params `toml:"params"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultScenario: "300K Calls",
			LogLevel:        "warn",
		},
		Projection: ProjectionConfig{
			Clamp:         true,
			GrowthPercent: 50,
			Years:         3,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8787",
			PollIntervalSec: 15,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		LokalAI: LokalAIConfig{
			OneTimeCost:     100_000_000,
			OperationalCost: 60_000_000,
		},
		LiveAudio: LiveAudioConfig{
			OneTimeCost: 60_000_000,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "revcalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "revcalc")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the local user
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // config path is chosen by the local user
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DefaultScenarioName returns the scenario from REVCALC_SCENARIO or config.
func DefaultScenarioName(cfg Config) string {
	if name := os.Getenv("REVCALC_SCENARIO"); name != "" {
		return name
	}
	return cfg.General.DefaultScenario
}

// ServerAddr returns the daemon address from REVCALC_ADDR or config.
func ServerAddr(cfg Config) string {
	if addr := os.Getenv("REVCALC_ADDR"); addr != "" {
		return addr
	}
	if cfg.Server.Addr == "" {
		return DefaultConfig().Server.Addr
	}
	return cfg.Server.Addr
}

// LogLevel returns the log level from REVCALC_LOG_LEVEL or config.
func LogLevel(cfg Config) string {
	if lvl := os.Getenv("REVCALC_LOG_LEVEL"); lvl != "" {
		return strings.ToLower(lvl)
	}
	return cfg.General.LogLevel
}

// Tiers returns the configured LokalAI tiers, or the defaults.
func Tiers(cfg Config) []revenue.Tier {
	if len(cfg.LokalAI.Tiers) > 0 {
		return cfg.LokalAI.Tiers
	}
	return revenue.DefaultTiers()
}

// LiveAudio returns the configured live-audio package, or the default.
func LiveAudio(cfg Config) revenue.LiveAudioParams {
	if cfg.LiveAudio.Params != nil {
		return *cfg.LiveAudio.Params
	}
	return revenue.DefaultLiveAudio()
}
