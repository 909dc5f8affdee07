package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var (
	fetchToken      string
	fetchDatabaseID string
	fetchStatus     string
	fetchNoHistory  bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch finished tasks from Notion into standups.json",
	Long: `Query the configured Notion database for pages whose Status property
equals the filter value (default "Done"), expand each page's full block tree,
and write the result to <out>/standups.json.

The listing call is fatal on failure; a failure expanding a single page's
blocks only degrades that page to partial content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if fetchToken != "" {
			cfg.NotionToken = fetchToken
		}
		if fetchDatabaseID != "" {
			cfg.DatabaseID = fetchDatabaseID
		}
		if fetchStatus != "" {
			cfg.StatusFilter = fetchStatus
		}
		if err := cfg.ValidateNotion(); err != nil {
			return err
		}

		client := internal.NewNotionClient(cfg.NotionToken)
		fetcher := internal.NewFetcher(client, cfg.DatabaseID, cfg.StatusFilter)

		ctx := context.Background()
		started := time.Now()

		var doc *internal.StandupDocument
		message := fmt.Sprintf("Fetching pages with status %q", cfg.StatusFilter)
		err = internal.ShowProgress(ctx, message, func() error {
			var fetchErr error
			doc, fetchErr = fetcher.Fetch(ctx)
			return fetchErr
		})
		if err != nil {
			return err
		}

		outputPath := cfg.StandupPath()
		if err := internal.SaveStandupDocument(doc, outputPath); err != nil {
			return fmt.Errorf("failed to save standup document: %w", err)
		}

		if !fetchNoHistory {
			recordRun(doc, started, outputPath)
		}

		internal.PrintSuccess(fmt.Sprintf("Saved %d page(s) to %s", doc.PageCount, outputPath))
		return nil
	},
}

// recordRun logs the run in the history store. History is an audit trail,
// so failures only warn.
func recordRun(doc *internal.StandupDocument, started time.Time, outputPath string) {
	historyPath, err := internal.DefaultHistoryPath()
	if err != nil {
		internal.LogWarn("Failed to locate history store: %v", err)
		return
	}

	store, err := internal.OpenHistory(historyPath)
	if err != nil {
		internal.LogWarn("Failed to open history store: %v", err)
		return
	}
	defer store.Close()

	rec := internal.RunRecord{
		ID:         doc.RunID,
		StartedAt:  started,
		DatabaseID: doc.DatabaseID,
		PageCount:  doc.PageCount,
		OutputPath: outputPath,
	}
	if err := store.RecordRun(rec); err != nil {
		internal.LogWarn("Failed to record run: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "Notion integration token (overrides NOTION_TOKEN)")
	fetchCmd.Flags().StringVar(&fetchDatabaseID, "database-id", "", "Notion database ID (overrides NOTION_DATABASE_ID)")
	fetchCmd.Flags().StringVar(&fetchStatus, "status", "", `Status filter value (default "Done")`)
	fetchCmd.Flags().BoolVar(&fetchNoHistory, "no-history", false, "Skip recording this run in the history store")
}
