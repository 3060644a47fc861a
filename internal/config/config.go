package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of environment variables overriding config keys
const EnvPrefix = "MIMIC"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig returns a default configuration
func DefaultConfig() types.Config {
	return types.Config{
		Source:      "testdata",
		Destination: "lotsofspace",
		Copies:      5000,
		BlockSize:   65536,
		Manifest: types.ManifestConfig{
			Enabled: false,
			DBPath:  "./mimic.db",
		},
		API: types.APIConfig{
			Host: "localhost",
			Port: 8087,
		},
		Logger: types.LoggerConfig{
			Level:    "info",
			Encoding: "console",
		},
		Fixture: types.FixtureConfig{
			Files:      32,
			MinSize:    1,
			MaxSize:    256 << 10,
			MaxDepth:   3,
			SparseSize: 1 << 30,
			Seed:       42,
		},
	}
}

// NewViper returns a viper instance preloaded with defaults and environment overrides
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	return v
}

func setDefaults(v *viper.Viper, cfg types.Config) {
	v.SetDefault("source", cfg.Source)
	v.SetDefault("destination", cfg.Destination)
	v.SetDefault("copies", cfg.Copies)
	v.SetDefault("block_size", cfg.BlockSize)
	v.SetDefault("progress", cfg.Progress)

	v.SetDefault("manifest.enabled", cfg.Manifest.Enabled)
	v.SetDefault("manifest.db_path", cfg.Manifest.DBPath)

	v.SetDefault("api.host", cfg.API.Host)
	v.SetDefault("api.port", cfg.API.Port)

	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.encoding", cfg.Logger.Encoding)

	v.SetDefault("fixture.files", cfg.Fixture.Files)
	v.SetDefault("fixture.min_size", cfg.Fixture.MinSize)
	v.SetDefault("fixture.max_size", cfg.Fixture.MaxSize)
	v.SetDefault("fixture.max_depth", cfg.Fixture.MaxDepth)
	v.SetDefault("fixture.sparse_size", cfg.Fixture.SparseSize)
	v.SetDefault("fixture.seed", cfg.Fixture.Seed)
}

// LoadFromFile loads configuration from a JSON or YAML file layered over defaults
func LoadFromFile(configPath string) (*types.Config, error) {
	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	v := NewViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v
func FromViper(v *viper.Viper) (*types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Ensure DB path is absolute
	if cfg.Manifest.DBPath != "" && !filepath.IsAbs(cfg.Manifest.DBPath) {
		absPath, err := filepath.Abs(cfg.Manifest.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
		cfg.Manifest.DBPath = absPath
	}

	return &cfg, nil
}

// Validate checks that the configuration parameters are valid
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}

	if cfg.Source == "" {
		return fmt.Errorf("%w: source must be set", ErrInvalidConfig)
	}
	if cfg.Destination == "" {
		return fmt.Errorf("%w: destination must be set", ErrInvalidConfig)
	}
	if cfg.Copies < 0 {
		return fmt.Errorf("%w: copies must be non-negative, got %d", ErrInvalidConfig, cfg.Copies)
	}
	if cfg.BlockSize < 2 {
		return fmt.Errorf("%w: block_size must be at least 2, got %d", ErrInvalidConfig, cfg.BlockSize)
	}

	if cfg.Manifest.Enabled && cfg.Manifest.DBPath == "" {
		return fmt.Errorf("%w: manifest.db_path must be set when the manifest is enabled", ErrInvalidConfig)
	}

	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		return fmt.Errorf("%w: API port must be between 1 and 65535, got %d", ErrInvalidConfig, cfg.API.Port)
	}

	if _, err := zap.ParseAtomicLevel(cfg.Logger.Level); err != nil {
		return fmt.Errorf("%w: logger.level: %v", ErrInvalidConfig, err)
	}
	if cfg.Logger.Encoding != "console" && cfg.Logger.Encoding != "json" {
		return fmt.Errorf("%w: logger.encoding must be console or json, got %q", ErrInvalidConfig, cfg.Logger.Encoding)
	}

	f := cfg.Fixture
	if f.Files < 0 {
		return fmt.Errorf("%w: fixture.files must be non-negative, got %d", ErrInvalidConfig, f.Files)
	}
	if f.MinSize < 0 || f.MaxSize < f.MinSize {
		return fmt.Errorf("%w: fixture.max_size (%d) must be >= fixture.min_size (%d) >= 0", ErrInvalidConfig, f.MaxSize, f.MinSize)
	}
	if f.MaxDepth < 0 {
		return fmt.Errorf("%w: fixture.max_depth must be non-negative, got %d", ErrInvalidConfig, f.MaxDepth)
	}
	if f.SparseSize < 0 {
		return fmt.Errorf("%w: fixture.sparse_size must be non-negative, got %d", ErrInvalidConfig, f.SparseSize)
	}

	return nil
}

// SaveToFile saves configuration to a JSON file
func SaveToFile(cfg *types.Config, configPath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
