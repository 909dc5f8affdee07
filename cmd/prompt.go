package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var (
	promptInput       string
	promptNoClipboard bool
	promptQuiet       bool
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Build a paste-ready summarization prompt from standups.json",
	Long: `Assemble a single prompt string from a fetched standup document: fixed
instructions, the standup data grouped by project, and response-format
guidance for the receiving AI tool.

The prompt is written to <out>/standup-prompt.txt, printed to stdout, and
copied to the clipboard. Clipboard failures are non-fatal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		inputPath := promptInput
		if inputPath == "" {
			inputPath = cfg.StandupPath()
		}
		doc, err := internal.LoadStandupDocument(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load standup document: %w", err)
		}
		internal.LogInfo("Loaded %d page(s) from %s", doc.PageCount, inputPath)

		prompt := internal.BuildPrompt(doc)

		outputPath := cfg.PromptPath()
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, []byte(prompt), 0644); err != nil {
			return fmt.Errorf("failed to save prompt: %w", err)
		}

		if !promptQuiet {
			fmt.Println(prompt)
		}

		if !promptNoClipboard {
			if err := clipboard.WriteAll(prompt); err != nil {
				internal.PrintWarning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
			} else {
				internal.PrintSuccess("Copied to clipboard")
			}
		}

		internal.PrintSuccess(fmt.Sprintf("Prompt saved to %s", outputPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVarP(&promptInput, "input", "i", "", "Standup document to read (default <out>/standups.json)")
	promptCmd.Flags().BoolVar(&promptNoClipboard, "no-clipboard", false, "Skip copying the prompt to the clipboard")
	promptCmd.Flags().BoolVarP(&promptQuiet, "quiet", "q", false, "Do not print the prompt to stdout")
}
