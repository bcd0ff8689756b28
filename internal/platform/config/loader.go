package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from an optional YAML file layered over the
// defaults, then applies environment overrides.
type Loader struct {
	path      string
	useDotEnv bool
}

func NewLoader(path string) *Loader {
	return &Loader{
		path:      path,
		useDotEnv: true,
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

func (l *Loader) Load() (*Config, error) {
	if l.useDotEnv {
		// Missing .env just means plain process environment.
		_ = godotenv.Load()
	}

	cfg := Default()

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", l.path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", l.path, err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DYELENS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DYELENS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DYELENS_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
}

func validate(cfg *Config) error {
	if len(cfg.Guard.AllowedHosts) == 0 {
		return fmt.Errorf("guard: at least one allowed host is required")
	}
	if cfg.Limits.MaxFileSize <= 0 {
		return fmt.Errorf("limits: max_file_size must be positive")
	}
	if cfg.Limits.MaxWidth <= 0 || cfg.Limits.MaxHeight <= 0 || cfg.Limits.MaxPixels <= 0 {
		return fmt.Errorf("limits: dimension bounds must be positive")
	}
	if cfg.Processing.MaxDimension <= 0 {
		return fmt.Errorf("processing: max_dimension must be positive")
	}
	return nil
}
