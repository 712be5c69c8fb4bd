package config

import (
	"os"
	"strconv"

	"github.com/placementsprint/sprintd/errors"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP boundary settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	PublicDir string `yaml:"public_dir"`
}

// Config is the top-level service configuration. Values come from an optional
// YAML file with environment variables taking precedence; the provider API
// key is env-only and read by the llm package, never stored here.
type Config struct {
	LLMClient     string       `yaml:"llm"` // openrouter | anthropic | gemini | bedrock | mock
	PrimaryModel  string       `yaml:"primary_model"`
	FallbackModel string       `yaml:"fallback_model"`
	BaseURL       string       `yaml:"base_url"`
	SiteURL       string       `yaml:"site_url"`
	AppName       string       `yaml:"app_name"`
	Server        ServerConfig `yaml:"server"`
}

// Default returns the configuration used when no file and no env overrides
// are present.
func Default() *Config {
	return &Config{
		LLMClient:     "openrouter",
		PrimaryModel:  "openai/gpt-oss-20b:free",
		FallbackModel: "openai/gpt-oss-120b:free",
		BaseURL:       "https://openrouter.ai/api/v1",
		AppName:       "PlacementSprint",
		Server: ServerConfig{
			Port:      8080,
			PublicDir: "public",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then env overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, "reading config %s", path)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parsing config %s", path)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.PrimaryModel, "OPENROUTER_MODEL")
	setIfPresent(&c.FallbackModel, "OPENROUTER_FALLBACK_MODEL")
	setIfPresent(&c.BaseURL, "OPENROUTER_BASE_URL")
	setIfPresent(&c.SiteURL, "OPENROUTER_SITE_URL")
	setIfPresent(&c.AppName, "OPENROUTER_APP_NAME")
	setIfPresent(&c.LLMClient, "SPRINTD_LLM")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) validate() error {
	switch c.LLMClient {
	case "openrouter", "anthropic", "gemini", "bedrock", "mock":
	default:
		return errors.New(errors.KindInvalidRequest, "unknown llm client %q", c.LLMClient)
	}
	if c.PrimaryModel == "" || c.FallbackModel == "" {
		return errors.New(errors.KindInvalidRequest, "primary_model and fallback_model are required")
	}
	if c.Server.Port <= 0 {
		return errors.New(errors.KindInvalidRequest, "server port must be positive, got %d", c.Server.Port)
	}
	return nil
}

// AttributionHeaders returns the optional OpenRouter attribution headers.
// Unset values produce no header at all rather than an empty one.
func (c *Config) AttributionHeaders() map[string]string {
	headers := map[string]string{}
	if c.SiteURL != "" {
		headers["HTTP-Referer"] = c.SiteURL
	}
	if c.AppName != "" {
		headers["X-Title"] = c.AppName
	}
	return headers
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
