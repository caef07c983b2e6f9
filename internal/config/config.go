package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	Tailscale   TailscaleConfig   `yaml:"tailscale"`
	Credentials CredentialsConfig `yaml:"credentials"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GatewayConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type CredentialsConfig struct {
	Path string `yaml:"path"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix HYPERTROQ_ and underscore-separated paths:
//
//	HYPERTROQ_BACKEND_URL, HYPERTROQ_BACKEND_TIMEOUT,
//	HYPERTROQ_GATEWAY_HOST, HYPERTROQ_GATEWAY_PORT,
//	HYPERTROQ_TS_HOSTNAME, HYPERTROQ_TS_STATE_DIR,
//	HYPERTROQ_CREDENTIALS_PATH
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HYPERTROQ_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("HYPERTROQ_BACKEND_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("HYPERTROQ_GATEWAY_HOST"); v != "" {
		cfg.Gateway.Host = v
	}
	if v := os.Getenv("HYPERTROQ_GATEWAY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.Port = port
		}
	}
	if v := os.Getenv("HYPERTROQ_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("HYPERTROQ_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("HYPERTROQ_CREDENTIALS_PATH"); v != "" {
		cfg.Credentials.Path = v
	}
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Gateway.Port == 0 {
		return fmt.Errorf("gateway.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Credentials.Path == "" {
		return fmt.Errorf("credentials.path is required")
	}
	return nil
}
