// Package config provides configuration management for the calculator suite.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Pricing PricingConfig `mapstructure:"pricing"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	History HistoryConfig `mapstructure:"history"`
}

// PricingConfig holds the numerical tuning constants. None of them are
// correctness invariants; they bound worst-case latency and chart range.
type PricingConfig struct {
	BinomialSteps  int     `mapstructure:"binomial_steps"`
	IVMin          float64 `mapstructure:"iv_min"` // decimal volatility
	IVMax          float64 `mapstructure:"iv_max"`
	MaxIterations  int     `mapstructure:"max_iterations"`
	Tolerance      float64 `mapstructure:"tolerance"` // absolute, on price
	CurveExtraDays int     `mapstructure:"curve_extra_days"`
	MaxGoalYears   int     `mapstructure:"max_goal_years"`
}

// ServerConfig holds the web front-end configuration.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// HistoryConfig holds the calculation-history journal configuration.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfigDir returns the config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fincalc"
	}
	return filepath.Join(home, ".config", "fincalc")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pricing.binomial_steps", 100)
	v.SetDefault("pricing.iv_min", 0.001)
	v.SetDefault("pricing.iv_max", 5.0)
	v.SetDefault("pricing.max_iterations", 100)
	v.SetDefault("pricing.tolerance", 1e-5)
	v.SetDefault("pricing.curve_extra_days", 20)
	v.SetDefault("pricing.max_goal_years", 1000)

	v.SetDefault("server.address", ":8080")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(DefaultConfigDir(), "logs", "fincalc.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(DefaultConfigDir(), "history.db"))
}

// Load reads configuration from the given directory, falling back to
// DefaultConfigDir. A missing config file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("FINCALC")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching the disk.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal of pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}
