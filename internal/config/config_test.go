package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
backend:
  base_url: "https://api.hypertroq.example"
  timeout_seconds: 20
gateway:
  host: "127.0.0.1"
  port: 8090
tailscale:
  enabled: false
credentials:
  path: "/tmp/hypertroq/credentials.db"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://api.hypertroq.example" {
		t.Errorf("backend.base_url = %q, want %q", cfg.Backend.BaseURL, "https://api.hypertroq.example")
	}
	if cfg.Backend.TimeoutSeconds != 20 {
		t.Errorf("backend.timeout_seconds = %d, want 20", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Gateway.Host != "127.0.0.1" {
		t.Errorf("gateway.host = %q, want %q", cfg.Gateway.Host, "127.0.0.1")
	}
	if cfg.Gateway.Port != 8090 {
		t.Errorf("gateway.port = %d, want 8090", cfg.Gateway.Port)
	}
	if cfg.Credentials.Path != "/tmp/hypertroq/credentials.db" {
		t.Errorf("credentials.path = %q, want %q", cfg.Credentials.Path, "/tmp/hypertroq/credentials.db")
	}
}

// TestEnvOverride verifies that HYPERTROQ_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("HYPERTROQ_BACKEND_URL", "https://override.example")
	t.Setenv("HYPERTROQ_GATEWAY_PORT", "9999")
	t.Setenv("HYPERTROQ_CREDENTIALS_PATH", "/var/lib/hypertroq/creds.db")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://override.example" {
		t.Errorf("backend.base_url = %q, want %q", cfg.Backend.BaseURL, "https://override.example")
	}
	if cfg.Gateway.Port != 9999 {
		t.Errorf("gateway.port = %d, want 9999", cfg.Gateway.Port)
	}
	if cfg.Credentials.Path != "/var/lib/hypertroq/creds.db" {
		t.Errorf("credentials.path = %q, want %q", cfg.Credentials.Path, "/var/lib/hypertroq/creds.db")
	}
	// Unchanged fields should keep YAML values
	if cfg.Gateway.Host != "127.0.0.1" {
		t.Errorf("gateway.host = %q, want %q", cfg.Gateway.Host, "127.0.0.1")
	}
}

// TestValidation verifies that missing required fields are rejected.
func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing backend url", `
gateway:
  port: 8090
credentials:
  path: "/tmp/creds.db"
`},
		{"missing gateway port", `
backend:
  base_url: "https://api.example"
credentials:
  path: "/tmp/creds.db"
`},
		{"missing credentials path", `
backend:
  base_url: "https://api.example"
gateway:
  port: 8090
`},
		{"tailscale enabled without hostname", `
backend:
  base_url: "https://api.example"
gateway:
  port: 8090
tailscale:
  enabled: true
credentials:
  path: "/tmp/creds.db"
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
