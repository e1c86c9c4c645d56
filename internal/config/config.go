// Package config loads the server settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the server configuration.
type Config struct {
	Port                 int    `yaml:"port" koanf:"port"`
	GeminiAPIKey         string `yaml:"gemini_api_key" koanf:"gemini_api_key"`
	GeminiModel          string `yaml:"gemini_model" koanf:"gemini_model"`
	GeminiBaseURL        string `yaml:"gemini_base_url" koanf:"gemini_base_url"`
	RelayTimeout         int    `yaml:"relay_timeout" koanf:"relay_timeout"`
	DatabasePath         string `yaml:"database_path" koanf:"database_path"`
	AdminUsername        string `yaml:"admin_username" koanf:"admin_username"`
	AdminPassword        string `yaml:"admin_password" koanf:"admin_password"`
	CORSOrigins          string `yaml:"cors_origins" koanf:"cors_origins"`
	TemplatesGlob        string `yaml:"templates_glob" koanf:"templates_glob"`
	StaticDir            string `yaml:"static_dir" koanf:"static_dir"`
	ContentPath          string `yaml:"content_path" koanf:"content_path"`
	VisitorRetentionDays int    `yaml:"visitor_retention_days" koanf:"visitor_retention_days"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:                 5050,
		GeminiModel:          "gemini-2.5-flash",
		GeminiBaseURL:        "https://generativelanguage.googleapis.com/v1beta/models",
		DatabasePath:         "data/portfolio.db",
		CORSOrigins:          "*",
		TemplatesGlob:        "templates/*",
		StaticDir:            "static",
		VisitorRetentionDays: 365,
	}
}

// envKeys maps the recognized environment variables to config keys.
var envKeys = map[string]string{
	"PORT":                   "port",
	"GEMINI_API_KEY":         "gemini_api_key",
	"GEMINI_MODEL":           "gemini_model",
	"GEMINI_BASE_URL":        "gemini_base_url",
	"RELAY_TIMEOUT":          "relay_timeout",
	"DATABASE_PATH":          "database_path",
	"ADMIN_USERNAME":         "admin_username",
	"ADMIN_PASSWORD":         "admin_password",
	"CORS_ORIGINS":           "cors_origins",
	"TEMPLATES_GLOB":         "templates_glob",
	"STATIC_DIR":             "static_dir",
	"CONTENT_PATH":           "content_path",
	"VISITOR_RETENTION_DAYS": "visitor_retention_days",
}

// Load overlays the YAML file at path (skipped when empty or missing) and
// then the environment on top of Default.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Empty variables are treated as unset.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		if os.Getenv(s) == "" {
			return ""
		}
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("gemini_model is required")
	}
	if c.RelayTimeout < 0 {
		return fmt.Errorf("relay_timeout must be non-negative")
	}
	if c.VisitorRetentionDays < 0 {
		return fmt.Errorf("visitor_retention_days must be non-negative")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Timeout is the relay's upstream timeout; zero means none.
func (c *Config) Timeout() time.Duration { return time.Duration(c.RelayTimeout) * time.Second }

// Origins splits CORSOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Retention is how long visitor records are kept.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.VisitorRetentionDays) * 24 * time.Hour
}
