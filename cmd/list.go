package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/notion-standup/internal"
	"github.com/spf13/cobra"
)

var listInput string

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	projectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pages in a fetched standup document",
	Long:  `Show the pages of an existing standup document (standups.json) as a table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		inputPath := listInput
		if inputPath == "" {
			inputPath = cfg.StandupPath()
		}
		doc, err := internal.LoadStandupDocument(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load standup document: %w (run 'notion-standup fetch' first)", err)
		}

		displayPages(doc)
		return nil
	},
}

func displayPages(doc *internal.StandupDocument) {
	if len(doc.Pages) == 0 {
		fmt.Println(headerStyle.Render("📋 No pages in document"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 %d page(s), status %q, fetched %s",
		len(doc.Pages), doc.StatusFilter, displayTime(doc.GeneratedAt)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Project")+"\t"+titleStyle.Render("Blocks")+"\t"+titleStyle.Render("Edited")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for i := range doc.Pages {
		page := &doc.Pages[i]

		title := page.Title
		if title == "" {
			title = "Untitled"
		}
		title = truncate(title, 50)

		project := page.ProjectName
		if project == "" {
			project = "—"
		}

		shortID := page.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID),
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(title),
			projectStyle.Render(project),
			countStyle.Render(strconv.Itoa(countBlocks(page.Blocks))),
			dateStyle.Render(displayTime(page.LastEditedTime)),
		)
	}

	_ = w.Flush()
}

// truncate shortens s to at most max runes, ellipsizing. Slicing runes keeps
// multibyte titles valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func countBlocks(blocks []internal.Block) int {
	n := len(blocks)
	for i := range blocks {
		n += countBlocks(blocks[i].Children)
	}
	return n
}

// displayTime formats an RFC3339-ish timestamp for table display.
func displayTime(ts string) string {
	if ts == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listInput, "input", "i", "", "Standup document to list (default <out>/standups.json)")
}
