package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 5050 {
		t.Errorf("expected default port 5050, got %d", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.Timeout() != 0 {
		t.Errorf("expected no relay timeout by default, got %v", cfg.Timeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 5050 || cfg.DatabasePath != "data/portfolio.db" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	body := "port: 9000\ngemini_model: gemini-2.0-flash\ncors_origins: https://a.dev, https://b.dev\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("RELAY_TIMEOUT", "15")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("env should override file: port = %d", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("model = %q", cfg.GeminiModel)
	}
	if cfg.GeminiAPIKey != "secret" {
		t.Errorf("api key not loaded")
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if got := cfg.Origins(); len(got) != 2 || got[1] != "https://b.dev" {
		t.Errorf("origins = %v", got)
	}
	if cfg.StaticDir != "static" {
		t.Errorf("untouched default lost: %q", cfg.StaticDir)
	}
}

func TestLoadIgnoresUnrelatedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME_PORT", "1")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 5050 {
		t.Errorf("port = %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"port zero":          func(c *Config) { c.Port = 0 },
		"port too high":      func(c *Config) { c.Port = 70000 },
		"no model":           func(c *Config) { c.GeminiModel = "" },
		"negative timeout":   func(c *Config) { c.RelayTimeout = -1 },
		"negative retention": func(c *Config) { c.VisitorRetentionDays = -5 },
		"no database":        func(c *Config) { c.DatabasePath = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOriginsDefaultsToAny(t *testing.T) {
	cfg := Default()
	cfg.CORSOrigins = " , "
	if got := cfg.Origins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("origins = %v", got)
	}
}
