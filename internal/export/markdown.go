package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/notion-standup/internal"
)

// MarkdownExporter exports standup documents as readable Markdown
type MarkdownExporter struct{}

// Export renders the document grouped by project, one section per page
func (e *MarkdownExporter) Export(doc *internal.StandupDocument, w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Standup\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", doc.GeneratedAt)
	fmt.Fprintf(&b, "Pages: %d (status %q)\n", doc.PageCount, doc.StatusFilter)

	groups, order := internal.GroupByProject(doc.Pages)
	for _, project := range order {
		fmt.Fprintf(&b, "\n## %s\n", project)
		for _, page := range groups[project] {
			fmt.Fprintf(&b, "\n### %s\n\n", page.Title)
			writeBlocks(&b, page.Blocks, 0)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBlocks(b *strings.Builder, blocks []internal.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range blocks {
		block := &blocks[i]
		if block.Text != "" {
			switch block.Type {
			case "to_do":
				mark := " "
				if block.Checked != nil && *block.Checked {
					mark = "x"
				}
				fmt.Fprintf(b, "%s- [%s] %s\n", indent, mark, block.Text)
			case "heading_1", "heading_2", "heading_3":
				fmt.Fprintf(b, "%s**%s**\n", indent, block.Text)
			case "code":
				fmt.Fprintf(b, "%s```%s\n%s%s\n%s```\n", indent, block.Language, indent, block.Text, indent)
			default:
				fmt.Fprintf(b, "%s- %s\n", indent, block.Text)
			}
		}
		writeBlocks(b, block.Children, depth+1)
	}
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
