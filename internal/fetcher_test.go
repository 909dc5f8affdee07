package internal

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeSource implements Source for fetcher tests.
type fakeSource struct {
	pagesByStatus map[string][]NotionPage
	blocks        map[string][]NotionBlock
	blockErrs     map[string]error
	queryErr      error
}

func (f *fakeSource) QueryDatabase(ctx context.Context, databaseID, status string) ([]NotionPage, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.pagesByStatus[status], nil
}

func (f *fakeSource) BlockChildren(ctx context.Context, blockID string) ([]NotionBlock, error) {
	if err := f.blockErrs[blockID]; err != nil {
		return nil, err
	}
	return f.blocks[blockID], nil
}

func titledPage(id, title, project string) NotionPage {
	return NotionPage{
		ID:  id,
		URL: "https://www.notion.so/" + id,
		Properties: map[string]NotionProperty{
			"Name":    {Type: "title", Title: []RichText{{PlainText: title}}},
			"Project": {Type: "select", Select: &SelectOption{Name: project}},
			"Status":  {Type: "status", Status: &SelectOption{Name: "Done"}},
		},
	}
}

func TestFetchFiltersByStatus(t *testing.T) {
	// Database holds 2 Done pages and 1 In Progress page; only the Done
	// ones match the filter.
	source := &fakeSource{
		pagesByStatus: map[string][]NotionPage{
			"Done": {
				titledPage("p1", "Task one", "Alpha"),
				titledPage("p2", "Task two", "Alpha"),
			},
			"In Progress": {
				titledPage("p3", "Task three", "Beta"),
			},
		},
		blocks: map[string][]NotionBlock{
			"p1": {CreateTestBlock("p1-b1", "checked off", false)},
			"p2": {CreateTestBlock("p2-b1", "also done", false)},
		},
	}

	fetcher := NewFetcher(source, "db-1", "Done")
	doc, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if doc.PageCount != 2 || len(doc.Pages) != 2 {
		t.Fatalf("Fetch() produced %d pages, want 2", len(doc.Pages))
	}
	if doc.Pages[0].ID != "p1" || doc.Pages[1].ID != "p2" {
		t.Errorf("page order = [%s %s], want [p1 p2]", doc.Pages[0].ID, doc.Pages[1].ID)
	}
	if doc.StatusFilter != "Done" || doc.DatabaseID != "db-1" {
		t.Errorf("document metadata = %q/%q, want Done/db-1", doc.StatusFilter, doc.DatabaseID)
	}
	if doc.RunID == "" || doc.GeneratedAt == "" {
		t.Error("document should carry run id and timestamp")
	}
}

func TestFetchBlockTreeFidelity(t *testing.T) {
	// p1 has a depth-3 tree: b1 -> b2 -> b3, with b4 as a second root.
	source := &fakeSource{
		pagesByStatus: map[string][]NotionPage{
			"Done": {titledPage("p1", "Nested", "Alpha")},
		},
		blocks: map[string][]NotionBlock{
			"p1": {
				CreateTestBlock("b1", "level one", true),
				CreateTestBlock("b4", "sibling", false),
			},
			"b1": {CreateTestBlock("b2", "level two", true)},
			"b2": {CreateTestBlock("b3", "level three", false)},
		},
	}

	fetcher := NewFetcher(source, "db-1", "Done")
	doc, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	blocks := doc.Pages[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("root block count = %d, want 2", len(blocks))
	}
	if blocks[0].ID != "b1" || blocks[1].ID != "b4" {
		t.Errorf("root order = [%s %s], want [b1 b4]", blocks[0].ID, blocks[1].ID)
	}

	level2 := blocks[0].Children
	if len(level2) != 1 || level2[0].ID != "b2" {
		t.Fatalf("level two = %+v, want single b2", level2)
	}
	level3 := level2[0].Children
	if len(level3) != 1 || level3[0].ID != "b3" || level3[0].Text != "level three" {
		t.Fatalf("level three = %+v, want single b3", level3)
	}
	if len(level3[0].Children) != 0 {
		t.Error("leaf block should have no children")
	}
}

func TestFetchListingFailureIsFatal(t *testing.T) {
	source := &fakeSource{queryErr: &NotionAPIError{Endpoint: "query", StatusCode: 401, Body: "unauthorized"}}

	fetcher := NewFetcher(source, "db-1", "Done")
	_, err := fetcher.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() should fail when the listing call fails")
	}

	var apiErr *NotionAPIError
	if !errors.As(err, &apiErr) {
		t.Errorf("error type = %T, want *NotionAPIError", err)
	}
}

func TestFetchPartialExpansion(t *testing.T) {
	// p1 expands fine, p2's block fetch fails. Both pages must still be
	// emitted, p2 with empty content.
	source := &fakeSource{
		pagesByStatus: map[string][]NotionPage{
			"Done": {
				titledPage("p1", "Good", "Alpha"),
				titledPage("p2", "Broken", "Alpha"),
			},
		},
		blocks: map[string][]NotionBlock{
			"p1": {CreateTestBlock("b1", "content", false)},
		},
		blockErrs: map[string]error{
			"p2": errors.New("boom"),
		},
	}

	fetcher := NewFetcher(source, "db-1", "Done")
	doc, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v, expansion failures must not abort the run", err)
	}

	if len(doc.Pages) != 2 {
		t.Fatalf("Fetch() produced %d pages, want 2", len(doc.Pages))
	}
	if len(doc.Pages[0].Blocks) != 1 {
		t.Errorf("p1 blocks = %d, want 1", len(doc.Pages[0].Blocks))
	}
	if len(doc.Pages[1].Blocks) != 0 {
		t.Errorf("p2 blocks = %d, want 0 (partial content)", len(doc.Pages[1].Blocks))
	}
	if doc.Pages[1].Title != "Broken" {
		t.Errorf("p2 title = %q, properties should survive expansion failure", doc.Pages[1].Title)
	}
}

func TestFetchChildExpansionFailureKeepsSiblings(t *testing.T) {
	source := &fakeSource{
		pagesByStatus: map[string][]NotionPage{
			"Done": {titledPage("p1", "Partial tree", "Alpha")},
		},
		blocks: map[string][]NotionBlock{
			"p1": {
				CreateTestBlock("b1", "expands", true),
			},
		},
		blockErrs: map[string]error{
			"b1": errors.New("boom"),
		},
	}

	fetcher := NewFetcher(source, "db-1", "Done")
	doc, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	blocks := doc.Pages[0].Blocks
	if len(blocks) != 1 || blocks[0].ID != "b1" {
		t.Fatalf("blocks = %+v, want b1 without children", blocks)
	}
	if len(blocks[0].Children) != 0 {
		t.Error("b1 children should be empty after child fetch failure")
	}
}

func TestFetchRepeatable(t *testing.T) {
	// Two runs against an unchanged database differ only in run id and
	// timestamp.
	source := &fakeSource{
		pagesByStatus: map[string][]NotionPage{
			"Done": {
				titledPage("p1", "Task one", "Alpha"),
				titledPage("p2", "Task two", "Beta"),
			},
		},
		blocks: map[string][]NotionBlock{
			"p1": {
				CreateTestBlock("b1", "level one", true),
				CreateTestBlock("b3", "sibling", false),
			},
			"b1": {CreateTestBlock("b2", "level two", false)},
			"p2": {CreateTestBlock("b4", "other page", false)},
		},
	}

	fetcher := NewFetcher(source, "db-1", "Done")

	first, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	second, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	if first.RunID == second.RunID {
		t.Error("each run should get a fresh run id")
	}

	first.RunID, second.RunID = "", ""
	first.GeneratedAt, second.GeneratedAt = "", ""
	if !reflect.DeepEqual(first, second) {
		t.Errorf("documents differ beyond run id and timestamp:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestFetchEmptyDatabase(t *testing.T) {
	source := &fakeSource{pagesByStatus: map[string][]NotionPage{}}

	fetcher := NewFetcher(source, "db-1", "Done")
	doc, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.PageCount != 0 || len(doc.Pages) != 0 {
		t.Errorf("empty database should produce an empty document, got %+v", doc)
	}
}
