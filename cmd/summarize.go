package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var (
	summarizeInput     string
	summarizeModel     string
	summarizeHost      string
	summarizeMaxTokens int
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a fetched standup document with a local model",
	Long: `Read standups.json, group pages by project, and ask an Ollama-compatible
model to expand each group's work items into a professional summary. The
result is written to <out>/standups-summarized.json.

A generation failure for one project does not stop the others; failed groups
are recorded under "errors" in the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if summarizeModel != "" {
			cfg.OllamaModel = summarizeModel
		}
		if summarizeHost != "" {
			cfg.OllamaHost = summarizeHost
		}
		if summarizeMaxTokens > 0 {
			cfg.MaxTokens = summarizeMaxTokens
		}
		if err := cfg.ValidateModel(); err != nil {
			return err
		}

		inputPath := summarizeInput
		if inputPath == "" {
			inputPath = cfg.StandupPath()
		}
		doc, err := internal.LoadStandupDocument(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load standup document: %w", err)
		}
		internal.LogInfo("Loaded %d page(s) from %s", doc.PageCount, inputPath)

		client := internal.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel, cfg.MaxTokens)
		summarizer := internal.NewSummarizer(client, cfg.OllamaModel)

		ctx := context.Background()
		summary := summarizer.Summarize(ctx, doc)

		outputPath := cfg.SummaryPath()
		if err := internal.SaveSummaryDocument(summary, outputPath); err != nil {
			return fmt.Errorf("failed to save summaries: %w", err)
		}

		if len(summary.Errors) > 0 {
			internal.PrintWarning(fmt.Sprintf("%d project(s) failed to summarize", len(summary.Errors)))
		}
		if len(summary.Summaries) == 0 && len(summary.Errors) > 0 {
			return fmt.Errorf("all %d project group(s) failed to summarize", len(summary.Errors))
		}

		internal.PrintSuccess(fmt.Sprintf("Summarized %d project(s) to %s", len(summary.Summaries), outputPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&summarizeInput, "input", "i", "", "Standup document to summarize (default <out>/standups.json)")
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "Model name (overrides OLLAMA_MODEL)")
	summarizeCmd.Flags().StringVar(&summarizeHost, "host", "", "Inference server URL (overrides OLLAMA_HOST)")
	summarizeCmd.Flags().IntVar(&summarizeMaxTokens, "max-tokens", 0, "Maximum tokens per summary (default 200)")
}
