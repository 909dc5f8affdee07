package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var runsLimit int

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the history of past fetch runs",
	Long:  `List recorded fetch runs (newest first) from the local history store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		historyPath, err := internal.DefaultHistoryPath()
		if err != nil {
			return fmt.Errorf("failed to locate history store: %w", err)
		}

		store, err := internal.OpenHistory(historyPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListRuns(runsLimit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println(headerStyle.Render("📋 No recorded runs"))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("📋 %d recorded run(s)", len(records))))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Run")+"\t"+titleStyle.Render("Started")+"\t"+titleStyle.Render("Pages")+"\t"+titleStyle.Render("Output")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

		for _, rec := range records {
			shortID := rec.ID
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}

			started := "—"
			if !rec.StartedAt.IsZero() {
				started = rec.StartedAt.Local().Format("2006-01-02 15:04")
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				idStyle.Render(shortID),
				dateStyle.Render(started),
				countStyle.Render(strconv.Itoa(rec.PageCount)),
				rec.OutputPath,
			)
		}

		_ = w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
}
