package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Providers.Default != "gemini" {
		t.Fatalf("expected gemini as default provider, got %s", cfg.Providers.Default)
	}
	if cfg.Providers.Gemini.Model == "" || cfg.Providers.Grok.BaseURL == "" {
		t.Fatal("provider defaults must be populated")
	}
	if cfg.Health.Schedule != "@every 1m" {
		t.Fatalf("unexpected health schedule %s", cfg.Health.Schedule)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: 9090
providers:
  default: grok
  grok:
    model: grok-custom
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Providers.Default != "grok" {
		t.Fatalf("expected grok default, got %s", cfg.Providers.Default)
	}
	if cfg.Providers.Grok.Model != "grok-custom" {
		t.Fatalf("expected grok-custom, got %s", cfg.Providers.Grok.Model)
	}
	// Values the file does not mention keep their defaults.
	if cfg.Providers.Grok.BaseURL != "https://api.x.ai/v1" {
		t.Fatalf("unset fields must keep defaults, got %s", cfg.Providers.Grok.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Server.Port != 8080 {
		t.Fatalf("missing file must fall back to defaults, got port %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("SUMMARYHUB_AUTH_TOKEN", "env-token")
	t.Setenv("SUMMARYHUB_DEFAULT_PROVIDER", "perplexity")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GROK_API_KEY", "x-key")
	t.Setenv("PERPLEXITY_API_KEY", "p-key")

	cfg := Load("")

	if cfg.Database.DSN != "postgres://env/db" {
		t.Fatalf("DSN override missing, got %s", cfg.Database.DSN)
	}
	if cfg.Server.AuthToken != "env-token" {
		t.Fatalf("auth token override missing, got %s", cfg.Server.AuthToken)
	}
	if cfg.Providers.Default != "perplexity" {
		t.Fatalf("default provider override missing, got %s", cfg.Providers.Default)
	}
	if cfg.Providers.Gemini.APIKey != "g-key" || cfg.Providers.Grok.APIKey != "x-key" || cfg.Providers.Perplexity.APIKey != "p-key" {
		t.Fatal("API key overrides missing")
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
database:
  dsn: postgres://file/db
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_DSN", "postgres://env/db")

	cfg := Load(path)
	if cfg.Database.DSN != "postgres://env/db" {
		t.Fatalf("env must win over file, got %s", cfg.Database.DSN)
	}
}
