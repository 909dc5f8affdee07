package internal

import (
	"encoding/json"
	"time"
)

// CreateTestPage creates a page with paragraph blocks holding the given texts
func CreateTestPage(id, title, project string, texts ...string) Page {
	blocks := make([]Block, 0, len(texts))
	for i, text := range texts {
		blocks = append(blocks, Block{
			ID:   id + "-block-" + string(rune('a'+i)),
			Type: "paragraph",
			Text: text,
		})
	}
	return Page{
		ID:          id,
		Title:       title,
		ProjectName: project,
		URL:         "https://notion.so/" + id,
		Blocks:      blocks,
	}
}

// CreateTestDocument creates a StandupDocument wrapping the given pages
func CreateTestDocument(pages ...Page) *StandupDocument {
	return &StandupDocument{
		RunID:        "run-test",
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		DatabaseID:   "db-test",
		StatusFilter: "Done",
		PageCount:    len(pages),
		Pages:        pages,
	}
}

// CreateTestBlock creates a raw block with a paragraph payload
func CreateTestBlock(id, text string, hasChildren bool) NotionBlock {
	return NotionBlock{
		ID:          id,
		Type:        "paragraph",
		HasChildren: hasChildren,
		Payload:     paragraphPayload(text),
	}
}

func paragraphPayload(text string) map[string]json.RawMessage {
	data, _ := json.Marshal(map[string]any{
		"rich_text": []map[string]string{{"plain_text": text}},
	})
	return map[string]json.RawMessage{"paragraph": data}
}
