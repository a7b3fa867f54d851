package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	// backend API
	APIBaseURL            string `toml:"api_base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // 0 -> no client-side timeout
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// sentry (DSN comes from the SENTRY_DSN env var)
	SentryEnabled bool `toml:"sentry_enabled"`
	// session credential file; empty -> <user config dir>/fittrack/credentials.json
	CredentialsPath string `toml:"credentials_path"`
	// stats / feed snapshot cache
	SnapshotCacheTTLSeconds int `toml:"snapshot_cache_ttl_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] is empty", env)
	}

	cfg.Environment = env

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url not set for env [%s]", env)
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")

	if cfg.CredentialsPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get user config dir: %w", err)
		}
		cfg.CredentialsPath = filepath.Join(configDir, "fittrack", "credentials.json")
	}

	if cfg.SnapshotCacheTTLSeconds <= 0 {
		cfg.SnapshotCacheTTLSeconds = 60
	}

	return cfg, nil
}
