package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	cfgFile string
	outDir  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notion-standup",
	Short: "Turn finished Notion tasks into standup summaries",
	Long: `A small CLI to pull finished tasks out of a Notion database and turn
them into standup material.

The pipeline has three independent steps:
  notion-standup fetch        # Notion database -> logs/standups.json
  notion-standup summarize    # standups.json -> per-project summaries (local model)
  notion-standup prompt       # standups.json -> paste-ready prompt + clipboard

Supporting commands:
  notion-standup list         # table view of a fetched document
  notion-standup export       # re-export a document as json, jsonl, md or yaml
  notion-standup runs         # history of past fetch runs
  notion-standup healthcheck  # verify config, Notion access and model endpoint

Configuration comes from flags, the NOTION_TOKEN / NOTION_DATABASE_ID /
OLLAMA_HOST / OLLAMA_MODEL environment variables, or
~/.notion-standup/config.yaml, in that order of precedence.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves config from file + environment and applies the
// persistent --out override.
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.notion-standup/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Output directory for generated files (default ./logs)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
