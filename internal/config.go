package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for optional settings.
const (
	DefaultStatusFilter = "Done"
	DefaultOutputDir    = "./logs"
	DefaultOllamaHost   = "http://localhost:11434"
	DefaultOllamaModel  = "llama3.2"
	DefaultMaxTokens    = 200
)

// Config holds everything a command needs. It is resolved once at startup
// (flags > environment > config file > defaults) and passed explicitly into
// each component, never read from globals.
type Config struct {
	NotionToken  string `yaml:"notion_token"`
	DatabaseID   string `yaml:"database_id"`
	StatusFilter string `yaml:"status_filter"`
	OutputDir    string `yaml:"output_dir"`
	OllamaHost   string `yaml:"ollama_host"`
	OllamaModel  string `yaml:"ollama_model"`
	MaxTokens    int    `yaml:"max_tokens"`
}

// DefaultConfig returns a config with all optional settings filled in.
func DefaultConfig() *Config {
	return &Config{
		StatusFilter: DefaultStatusFilter,
		OutputDir:    DefaultOutputDir,
		OllamaHost:   DefaultOllamaHost,
		OllamaModel:  DefaultOllamaModel,
		MaxTokens:    DefaultMaxTokens,
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".notion-standup", "config.yaml"), nil
}

// LoadConfig resolves configuration from the YAML file at path (optional)
// and the environment. An empty path falls back to DefaultConfigPath; a
// missing default file is not an error, a missing explicit one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No per-user config, env and flags still apply.
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		cfg.NotionToken = v
	}
	if v := os.Getenv("NOTION_DATABASE_ID"); v != "" {
		cfg.DatabaseID = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.OllamaHost = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
}

// ValidateNotion checks the settings required before any Notion API call.
func (c *Config) ValidateNotion() error {
	if c.NotionToken == "" {
		return &ConfigError{Field: "notion token", Hint: "set NOTION_TOKEN or --token"}
	}
	if c.DatabaseID == "" {
		return &ConfigError{Field: "database id", Hint: "set NOTION_DATABASE_ID or --database-id"}
	}
	return nil
}

// ValidateModel checks the settings required before any model call.
func (c *Config) ValidateModel() error {
	if c.OllamaModel == "" {
		return &ConfigError{Field: "model name", Hint: "set OLLAMA_MODEL or --model"}
	}
	if c.OllamaHost == "" {
		return &ConfigError{Field: "model host", Hint: "set OLLAMA_HOST or --host"}
	}
	return nil
}

// StandupPath is the fetcher's output file.
func (c *Config) StandupPath() string {
	return filepath.Join(c.OutputDir, "standups.json")
}

// SummaryPath is the summarizer's output file.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.OutputDir, "standups-summarized.json")
}

// PromptPath is the prompt builder's output file.
func (c *Config) PromptPath() string {
	return filepath.Join(c.OutputDir, "standup-prompt.txt")
}
