// Package testutil provides canned Notion API payloads and a mock Notion
// server for tests.
package testutil

import (
	"fmt"
	"strings"
)

// PageJSON returns a raw Notion page object with a title property "Name",
// a select property "Project" and a status property "Status".
func PageJSON(id, title, project, status string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"url": "https://www.notion.so/%s",
		"created_time": "2026-01-02T09:00:00.000Z",
		"last_edited_time": "2026-01-03T17:30:00.000Z",
		"archived": false,
		"properties": {
			"Name": {"type": "title", "title": [{"plain_text": %q}]},
			"Project": {"type": "select", "select": {"name": %q}},
			"Status": {"type": "status", "status": {"name": %q}}
		}
	}`, id, id, title, project, status)
}

// ParagraphBlockJSON returns a raw paragraph block.
func ParagraphBlockJSON(id, text string, hasChildren bool) string {
	return blockJSON(id, "paragraph", fmt.Sprintf(`{"rich_text": [{"plain_text": %q}]}`, text), hasChildren)
}

// TodoBlockJSON returns a raw to_do block.
func TodoBlockJSON(id, text string, checked, hasChildren bool) string {
	payload := fmt.Sprintf(`{"rich_text": [{"plain_text": %q}], "checked": %t}`, text, checked)
	return blockJSON(id, "to_do", payload, hasChildren)
}

// BulletBlockJSON returns a raw bulleted_list_item block.
func BulletBlockJSON(id, text string, hasChildren bool) string {
	return blockJSON(id, "bulleted_list_item", fmt.Sprintf(`{"rich_text": [{"plain_text": %q}]}`, text), hasChildren)
}

func blockJSON(id, blockType, payload string, hasChildren bool) string {
	return fmt.Sprintf(`{
		"object": "block",
		"id": %q,
		"type": %q,
		"has_children": %t,
		"created_time": "2026-01-02T09:00:00.000Z",
		"last_edited_time": "2026-01-02T09:05:00.000Z",
		%q: %s
	}`, id, blockType, hasChildren, blockType, payload)
}

// ResultsJSON wraps raw objects in a paginated list response envelope.
func ResultsJSON(hasMore bool, nextCursor string, results ...string) string {
	cursor := "null"
	if nextCursor != "" {
		cursor = fmt.Sprintf("%q", nextCursor)
	}
	return fmt.Sprintf(`{
		"object": "list",
		"results": [%s],
		"has_more": %t,
		"next_cursor": %s
	}`, strings.Join(results, ","), hasMore, cursor)
}
