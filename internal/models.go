package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Page is a single database row with its coerced properties and content tree.
type Page struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	ProjectName    string         `json:"projectName,omitempty"`
	URL            string         `json:"url,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
	Archived       bool           `json:"archived,omitempty"`
	Properties     map[string]any `json:"properties,omitempty"`
	Blocks         []Block        `json:"blocks,omitempty"`
}

// Block is one content node. Children are owned exclusively by their parent
// and preserve the order the API returned them in.
type Block struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Text     string  `json:"text"`
	Checked  *bool   `json:"checked,omitempty"`
	Language string  `json:"language,omitempty"`
	Children []Block `json:"children,omitempty"`
}

// StandupDocument is the on-disk unit produced by a fetch run.
type StandupDocument struct {
	RunID        string `json:"run_id"`
	GeneratedAt  string `json:"generated_at"`
	DatabaseID   string `json:"database_id"`
	StatusFilter string `json:"status_filter"`
	PageCount    int    `json:"page_count"`
	Pages        []Page `json:"pages"`
}

// SummaryDocument maps project names to generated narratives. Groups whose
// generation failed appear in Errors instead of Summaries.
type SummaryDocument struct {
	RunID       string            `json:"run_id,omitempty"`
	GeneratedAt string            `json:"generated_at"`
	Model       string            `json:"model,omitempty"`
	Summaries   map[string]string `json:"summaries"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// contentTypes are the block types whose text feeds summaries and prompts.
var contentTypes = map[string]bool{
	"to_do":              true,
	"bulleted_list_item": true,
	"numbered_list_item": true,
	"paragraph":          true,
	"heading_1":          true,
	"heading_2":          true,
	"heading_3":          true,
}

// Contents walks the page's block tree depth-first and returns the non-empty
// text of every content-bearing block, in document order.
func (p *Page) Contents() []string {
	var out []string
	var walk func(blocks []Block)
	walk = func(blocks []Block) {
		for i := range blocks {
			b := &blocks[i]
			if b.Text != "" && contentTypes[b.Type] {
				out = append(out, b.Text)
			}
			walk(b.Children)
		}
	}
	walk(p.Blocks)
	return out
}

// SaveStandupDocument writes the document as pretty-printed JSON, creating
// the parent directory if needed.
func SaveStandupDocument(doc *StandupDocument, path string) error {
	return saveJSON(doc, path)
}

// LoadStandupDocument reads a document previously written by a fetch run.
func LoadStandupDocument(path string) (*StandupDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc StandupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse standup document %s: %w", path, err)
	}

	return &doc, nil
}

// SaveSummaryDocument writes the summary output as pretty-printed JSON.
func SaveSummaryDocument(doc *SummaryDocument, path string) error {
	return saveJSON(doc, path)
}

func saveJSON(v any, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	return os.WriteFile(path, data, 0644)
}
