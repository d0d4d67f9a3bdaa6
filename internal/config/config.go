package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "SUMMARYHUB_CONFIG"
	databaseDSNEnv      = "DATABASE_DSN"
	authTokenEnv        = "SUMMARYHUB_AUTH_TOKEN"
	defaultProviderEnv  = "SUMMARYHUB_DEFAULT_PROVIDER"
	geminiAPIKeyEnv     = "GEMINI_API_KEY"
	grokAPIKeyEnv       = "GROK_API_KEY"
	perplexityAPIKeyEnv = "PERPLEXITY_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Providers ProvidersConfig `yaml:"providers"`
	Health    HealthConfig    `yaml:"health"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig describes the HTTP listener and the gateway handoff token.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"authToken"`
}

// DatabaseConfig describes Postgres connection details for item lookup.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ProvidersConfig groups the LLM backends and selects the default one.
type ProvidersConfig struct {
	Default    string           `yaml:"default"`
	Mock       bool             `yaml:"mock"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Grok       GrokConfig       `yaml:"grok"`
	Perplexity PerplexityConfig `yaml:"perplexity"`
}

// GeminiConfig defines how to contact the Generative Language API.
type GeminiConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// GrokConfig defines how to contact the xAI API.
type GrokConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// PerplexityConfig defines how to contact the Perplexity API.
type PerplexityConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// HealthConfig controls the periodic provider availability probe.
type HealthConfig struct {
	Schedule string `yaml:"schedule"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. The path argument wins over the SUMMARYHUB_CONFIG env var.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(authTokenEnv); v != "" {
		c.Server.AuthToken = v
	}
	if v := os.Getenv(defaultProviderEnv); v != "" {
		c.Providers.Default = v
	}
	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Providers.Gemini.APIKey = v
	}
	if v := os.Getenv(grokAPIKeyEnv); v != "" {
		c.Providers.Grok.APIKey = v
	}
	if v := os.Getenv(perplexityAPIKeyEnv); v != "" {
		c.Providers.Perplexity.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}
	if override.Server.AuthToken != "" {
		base.Server.AuthToken = override.Server.AuthToken
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Providers.Default != "" {
		base.Providers.Default = override.Providers.Default
	}
	if override.Providers.Mock {
		base.Providers.Mock = true
	}
	if override.Providers.Gemini.BaseURL != "" {
		base.Providers.Gemini.BaseURL = override.Providers.Gemini.BaseURL
	}
	if override.Providers.Gemini.Model != "" {
		base.Providers.Gemini.Model = override.Providers.Gemini.Model
	}
	if override.Providers.Gemini.APIKey != "" {
		base.Providers.Gemini.APIKey = override.Providers.Gemini.APIKey
	}

	if override.Providers.Grok.BaseURL != "" {
		base.Providers.Grok.BaseURL = override.Providers.Grok.BaseURL
	}
	if override.Providers.Grok.Model != "" {
		base.Providers.Grok.Model = override.Providers.Grok.Model
	}
	if override.Providers.Grok.APIKey != "" {
		base.Providers.Grok.APIKey = override.Providers.Grok.APIKey
	}

	if override.Providers.Perplexity.BaseURL != "" {
		base.Providers.Perplexity.BaseURL = override.Providers.Perplexity.BaseURL
	}
	if override.Providers.Perplexity.Model != "" {
		base.Providers.Perplexity.Model = override.Providers.Perplexity.Model
	}
	if override.Providers.Perplexity.APIKey != "" {
		base.Providers.Perplexity.APIKey = override.Providers.Perplexity.APIKey
	}

	if override.Health.Schedule != "" {
		base.Health.Schedule = override.Health.Schedule
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Providers: ProvidersConfig{
			Default: "gemini",
			Gemini: GeminiConfig{
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
				Model:   "gemini-2.5-flash",
			},
			Grok: GrokConfig{
				BaseURL: "https://api.x.ai/v1",
				Model:   "grok-4",
			},
			Perplexity: PerplexityConfig{
				BaseURL: "https://api.perplexity.ai",
				Model:   "llama-3.1-sonar-small-128k-online",
			},
		},
		Health:  HealthConfig{Schedule: "@every 1m"},
		Logging: LoggingConfig{Level: "info"},
	}
}
