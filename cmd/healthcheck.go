package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check config, Notion access and the model endpoint",
	Long: `Verify that notion-standup is ready to run:
  • Required configuration is present
  • The Notion token and database id are accepted by the API
  • The local inference server is reachable

A missing or rejected Notion setup fails the check; an unreachable model
endpoint only warns, since fetch and prompt work without it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 Notion Standup Health Check"))
		fmt.Println()

		ctx := context.Background()

		// Step 1: configuration
		fmt.Println(infoStyle.Render("Step 1: Checking configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if err := cfg.ValidateNotion(); err != nil {
			fmt.Println(errorStyle.Render("❌ Incomplete configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(successStyle.Render("✅ Configuration present"))
		fmt.Println()

		// Step 2: Notion access
		fmt.Println(infoStyle.Render("Step 2: Probing Notion database..."))
		client := internal.NewNotionClient(cfg.NotionToken)
		if err := client.ProbeDatabase(ctx, cfg.DatabaseID); err != nil {
			fmt.Println(errorStyle.Render("❌ Notion database not accessible:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(successStyle.Render("✅ Notion database accessible"))
		fmt.Println()

		// Step 3: model endpoint
		fmt.Println(infoStyle.Render("Step 3: Probing inference server..."))
		modelOK := false
		if err := cfg.ValidateModel(); err != nil {
			fmt.Println(warningStyle.Render("⚠️  Model not configured:"), err)
		} else {
			ollama := internal.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel, cfg.MaxTokens)
			if err := ollama.Ping(ctx); err != nil {
				fmt.Println(warningStyle.Render("⚠️  Inference server not reachable:"), err)
				fmt.Println("   'summarize' will fail until it is running; 'fetch' and 'prompt' are unaffected.")
			} else {
				fmt.Println(successStyle.Render("✅ Inference server reachable"))
				modelOK = true
			}
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		fmt.Println(successStyle.Render("✅ Notion: ready"))
		if modelOK {
			fmt.Println(successStyle.Render(fmt.Sprintf("✅ Model: ready (%s)", cfg.OllamaModel)))
		} else {
			fmt.Println(warningStyle.Render("⚠️  Model: unavailable"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
