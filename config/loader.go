package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort             = 16181
	DefaultDiscoveryTimeout = 10 * time.Second
	DefaultStoreDSN         = "public_transports.db"
)

// DefaultPaths are searched in order when no explicit path is given
var DefaultPaths = []string{"config.yml", "./configs/config.yml"}

// Default returns a configuration with every default applied
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadAppConfig loads and validates the application configuration.
// When path is empty, PT_CONFIG and then DefaultPaths are tried; a missing
// file in that case is not an error and yields the defaults. Environment
// overrides (PT_DEBUG, PT_API_TOKEN) are applied last.
func LoadAppConfig(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("PT_CONFIG")
		explicit = path != ""
	}
	paths := DefaultPaths
	if explicit {
		paths = []string{path}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg AppConfig
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	applyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DiscoveryTimeout returns the per-call discovery bound
func (c *AppConfig) DiscoveryTimeout() time.Duration {
	return time.Duration(c.Discovery.TimeoutMS) * time.Millisecond
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Discovery.TimeoutMS == 0 {
		cfg.Discovery.TimeoutMS = int(DefaultDiscoveryTimeout / time.Millisecond)
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = DefaultStoreDSN
	}
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("PT_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PT_DEBUG: %w", err)
		}
		cfg.Log.Debug = debug
	}
	cfg.APIToken = os.Getenv("PT_API_TOKEN")
	return nil
}
