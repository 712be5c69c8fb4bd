package config

import (
	"os"
	"path/filepath"
	"testing"
)

const fullYAML = `
llm: openrouter
primary_model: meta-llama/llama-3.2-3b-instruct:free
fallback_model: deepseek/deepseek-chat-v3.1:free
site_url: https://sprint.example.com
app_name: PlacementSprint

server:
  port: 9090
  public_dir: web
`

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLMClient != "openrouter" {
		t.Errorf("expected openrouter default, got %q", cfg.LLMClient)
	}
	if cfg.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PrimaryModel != "meta-llama/llama-3.2-3b-instruct:free" {
		t.Errorf("primary model not loaded: %q", cfg.PrimaryModel)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.PublicDir != "web" {
		t.Errorf("expected public dir web, got %q", cfg.Server.PublicDir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENROUTER_MODEL", "openai/gpt-oss-20b:free")
	t.Setenv("PORT", "3000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PrimaryModel != "openai/gpt-oss-20b:free" {
		t.Errorf("env override lost: %q", cfg.PrimaryModel)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Server.Port)
	}
}

func TestUnknownClientRejected(t *testing.T) {
	t.Setenv("SPRINTD_LLM", "watson")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown llm client")
	}
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PrimaryModel == "" {
		t.Fatal("expected default primary model")
	}
}

func TestAttributionHeadersSkipUnset(t *testing.T) {
	cfg := &Config{AppName: "PlacementSprint"}

	headers := cfg.AttributionHeaders()
	if _, ok := headers["HTTP-Referer"]; ok {
		t.Fatal("unset site_url must not produce an HTTP-Referer header")
	}
	if headers["X-Title"] != "PlacementSprint" {
		t.Fatalf("unexpected headers %v", headers)
	}

	cfg.SiteURL = "https://sprint.example.com"
	if got := cfg.AttributionHeaders()["HTTP-Referer"]; got != "https://sprint.example.com" {
		t.Fatalf("expected referer header, got %q", got)
	}
}
