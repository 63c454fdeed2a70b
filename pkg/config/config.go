package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Playback  PlaybackConfig  `mapstructure:"playback"`
	Resources ResourcesConfig `mapstructure:"resources"`
	Mouse     bool            `mapstructure:"mouse"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// PlaybackConfig holds streaming playback tuning
type PlaybackConfig struct {
	BaseDelayMs        int    `mapstructure:"base_delay_ms"`
	SpeedCap           int    `mapstructure:"speed_cap"`
	DebounceMs         int    `mapstructure:"debounce_ms"`
	IndicatorVisibleMs int    `mapstructure:"indicator_visible_ms"`
	IndicatorFadeMs    int    `mapstructure:"indicator_fade_ms"`
	CursorGlyph        string `mapstructure:"cursor_glyph"`
}

// ResourcesConfig holds resource registry bookkeeping configuration
type ResourcesConfig struct {
	HealthCheckSeconds int `mapstructure:"health_check_seconds"`
}

var (
	current Config
	mu      sync.RWMutex
)

// Load unmarshals the viper state into the global config
func Load() error {
	mu.Lock()
	defer mu.Unlock()
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	current = cfg
	return nil
}

// Get returns the current global configuration
func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the global configuration (useful for testing)
func Set(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}
