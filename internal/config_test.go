package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NOTION_TOKEN", "NOTION_DATABASE_ID", "OLLAMA_HOST", "OLLAMA_MODEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.StatusFilter != DefaultStatusFilter {
		t.Errorf("StatusFilter = %q, want %q", cfg.StatusFilter, DefaultStatusFilter)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.OllamaHost != DefaultOllamaHost || cfg.OllamaModel != DefaultOllamaModel {
		t.Errorf("ollama defaults = %q/%q", cfg.OllamaHost, cfg.OllamaModel)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.MaxTokens, DefaultMaxTokens)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "notion_token: file-token\ndatabase_id: file-db\nstatus_filter: Shipped\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.NotionToken != "file-token" || cfg.DatabaseID != "file-db" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.StatusFilter != "Shipped" {
		t.Errorf("StatusFilter = %q, want Shipped", cfg.StatusFilter)
	}
	// Unset file keys keep their defaults.
	if cfg.OllamaHost != DefaultOllamaHost {
		t.Errorf("OllamaHost = %q, want default", cfg.OllamaHost)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("NOTION_TOKEN", "env-token")
	t.Setenv("OLLAMA_MODEL", "env-model")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("notion_token: file-token\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.NotionToken != "env-token" {
		t.Errorf("NotionToken = %q, environment should win over file", cfg.NotionToken)
	}
	if cfg.OllamaModel != "env-model" {
		t.Errorf("OllamaModel = %q, want env-model", cfg.OllamaModel)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	clearConfigEnv(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() with missing explicit file should error")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("notion_token: [broken\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() with invalid YAML should error")
	}
}

func TestValidateNotion(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "complete", cfg: Config{NotionToken: "t", DatabaseID: "d"}, wantErr: false},
		{name: "missing token", cfg: Config{DatabaseID: "d"}, wantErr: true},
		{name: "missing database id", cfg: Config{NotionToken: "t"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateNotion()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateNotion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestValidateModel(t *testing.T) {
	cfg := Config{OllamaHost: "http://localhost:11434", OllamaModel: "llama3.2"}
	if err := cfg.ValidateModel(); err != nil {
		t.Errorf("ValidateModel() error = %v", err)
	}

	cfg.OllamaModel = ""
	if err := cfg.ValidateModel(); err == nil {
		t.Error("ValidateModel() with no model should error")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := Config{OutputDir: "/tmp/logs"}

	if got := cfg.StandupPath(); got != filepath.Join("/tmp/logs", "standups.json") {
		t.Errorf("StandupPath() = %q", got)
	}
	if got := cfg.SummaryPath(); got != filepath.Join("/tmp/logs", "standups-summarized.json") {
		t.Errorf("SummaryPath() = %q", got)
	}
	if got := cfg.PromptPath(); got != filepath.Join("/tmp/logs", "standup-prompt.txt") {
		t.Errorf("PromptPath() = %q", got)
	}
}
