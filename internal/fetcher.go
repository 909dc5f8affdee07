package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Source is the slice of the Notion API the fetcher depends on. NotionClient
// implements it; tests inject fakes.
type Source interface {
	QueryDatabase(ctx context.Context, databaseID, status string) ([]NotionPage, error)
	BlockChildren(ctx context.Context, blockID string) ([]NotionBlock, error)
}

// Fetcher builds a StandupDocument from a Notion database: one filtered
// query, then a depth-first block expansion per matching page.
type Fetcher struct {
	source     Source
	databaseID string
	status     string
}

// NewFetcher creates a Fetcher for one database and status filter.
func NewFetcher(source Source, databaseID, status string) *Fetcher {
	return &Fetcher{
		source:     source,
		databaseID: databaseID,
		status:     status,
	}
}

// Fetch queries the database and expands every matching page. A listing
// failure aborts the run; a failure expanding one page's blocks logs a
// warning and emits that page with whatever content was gathered.
func (f *Fetcher) Fetch(ctx context.Context) (*StandupDocument, error) {
	rawPages, err := f.source.QueryDatabase(ctx, f.databaseID, f.status)
	if err != nil {
		return nil, err
	}
	LogInfo("Fetched %d page(s) with status %q", len(rawPages), f.status)

	doc := &StandupDocument{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		DatabaseID:   f.databaseID,
		StatusFilter: f.status,
		Pages:        make([]Page, 0, len(rawPages)),
	}

	for i := range rawPages {
		raw := &rawPages[i]
		page := Page{
			ID:             raw.ID,
			Title:          PageTitle(raw.Properties),
			ProjectName:    PageProject(raw.Properties),
			URL:            raw.URL,
			CreatedTime:    raw.CreatedTime,
			LastEditedTime: raw.LastEditedTime,
			Archived:       raw.Archived,
			Properties:     FlattenProperties(raw.Properties),
		}

		blocks, err := f.blockTree(ctx, raw.ID)
		if err != nil {
			expErr := &ExpansionError{PageID: raw.ID, Err: err}
			LogWarn("Emitting page with partial content: %v", expErr)
		}
		page.Blocks = blocks

		doc.Pages = append(doc.Pages, page)
	}

	doc.PageCount = len(doc.Pages)
	return doc, nil
}

// blockTree fetches the children of parentID and recurses into every block
// that reports children, preserving order and nesting. On error it returns
// the blocks converted so far along with the error.
func (f *Fetcher) blockTree(ctx context.Context, parentID string) ([]Block, error) {
	rawBlocks, err := f.source.BlockChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(rawBlocks))
	for i := range rawBlocks {
		raw := &rawBlocks[i]
		block := FlattenBlock(raw)

		if raw.HasChildren {
			children, err := f.blockTree(ctx, raw.ID)
			block.Children = children
			if err != nil {
				blocks = append(blocks, block)
				return blocks, err
			}
		}

		blocks = append(blocks, block)
	}
	return blocks, nil
}
