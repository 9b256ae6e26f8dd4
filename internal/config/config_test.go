package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("provider = %q", cfg.AI.Provider)
	}
	if cfg.AI.MaxQuestions != 200 || cfg.AI.TextLimit != 12000 || cfg.AI.TimeoutSeconds != 60 {
		t.Errorf("AI defaults wrong: %+v", cfg.AI)
	}
	if cfg.AI.Model != "gemini-2.5-flash" || cfg.AI.FallbackModel != "gemini-2.0-flash" {
		t.Errorf("model defaults wrong: %+v", cfg.AI)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9000
ai:
  provider: openai
  model: gpt-4o-mini
database:
  driver: postgres
  host: db.internal
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AI_API_KEY", "env-key")
	t.Setenv("LLM_MAX_QUESTIONS", "50")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("ai config: %+v", cfg.AI)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("api key should come from env, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.MaxQuestions != 50 {
		t.Errorf("max questions = %d, want 50", cfg.AI.MaxQuestions)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("postgres default port = %d", cfg.Database.Port)
	}
	if cfg.PostgresDSN() == "" || cfg.MySQLDSN() == "" {
		t.Error("DSN helpers should build strings")
	}
}
