package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/notion-standup/internal"
)

// isolateConfig points HOME at a temp dir and clears the config env vars so
// tests never pick up the developer's real config.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_DATABASE_ID", "")
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("OLLAMA_MODEL", "")
	return home
}

// runCommand executes the root command with args and returns combined output.
// Persistent flag values are reset afterwards so tests do not leak state.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile = ""
		outDir = ""
		verbose = false
	})

	var buf bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeTestDocument saves a two-project standup document and returns its path.
func writeTestDocument(t *testing.T, dir string) string {
	t.Helper()
	doc := internal.CreateTestDocument(
		internal.CreateTestPage("page-alpha-1", "Ship the parser", "Alpha", "wrote the lexer"),
		internal.CreateTestPage("page-beta-1", "Fix deploy", "Beta", "rotated the keys"),
	)
	path := dir + "/standups.json"
	if err := internal.SaveStandupDocument(doc, path); err != nil {
		t.Fatalf("SaveStandupDocument() error = %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
		})
	}
}

func TestRootCommand_Help_ListsSubcommands(t *testing.T) {
	isolateConfig(t)

	output, err := runCommand(t, "--help")
	if err != nil {
		t.Fatalf("rootCmd.Execute() error = %v", err)
	}

	for _, sub := range []string{"fetch", "summarize", "prompt", "export", "list", "runs", "healthcheck"} {
		if !strings.Contains(output, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}
