package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	notionBaseURL = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"

	// statusProperty is the database column the fetch filter runs against.
	statusProperty = "Status"
)

// RichText is one span of a Notion rich text array. Only the rendered text
// matters here; annotations and links are ignored.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is a select, multi-select or status option.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is a date property payload.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// PersonRef is a people property entry.
type PersonRef struct {
	Name string `json:"name"`
}

// IDRef is a relation property entry.
type IDRef struct {
	ID string `json:"id"`
}

// NotionProperty is the type-tagged union the API returns for each page
// property. Only the payload matching Type is populated.
type NotionProperty struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Email       *string        `json:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	People      []PersonRef    `json:"people,omitempty"`
	Relation    []IDRef        `json:"relation,omitempty"`
}

// NotionPage is a raw page object from a database query.
type NotionPage struct {
	ID             string                    `json:"id"`
	URL            string                    `json:"url"`
	CreatedTime    string                    `json:"created_time"`
	LastEditedTime string                    `json:"last_edited_time"`
	Archived       bool                      `json:"archived"`
	Properties     map[string]NotionProperty `json:"properties"`
}

// NotionBlock is a raw block object. The type-keyed payload (paragraph,
// to_do, ...) is kept as raw JSON and decoded during flattening, so unknown
// block types survive the round trip.
type NotionBlock struct {
	ID             string
	Type           string
	HasChildren    bool
	CreatedTime    string
	LastEditedTime string
	Payload        map[string]json.RawMessage
}

// UnmarshalJSON splits the block envelope from the type-keyed payloads.
// Malformed scalar fields degrade to zero values rather than failing the
// whole block.
func (b *NotionBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Payload = make(map[string]json.RawMessage)
	for key, value := range raw {
		switch key {
		case "id":
			_ = json.Unmarshal(value, &b.ID)
		case "type":
			_ = json.Unmarshal(value, &b.Type)
		case "has_children":
			_ = json.Unmarshal(value, &b.HasChildren)
		case "created_time":
			_ = json.Unmarshal(value, &b.CreatedTime)
		case "last_edited_time":
			_ = json.Unmarshal(value, &b.LastEditedTime)
		case "object", "parent", "archived", "in_trash", "created_by", "last_edited_by":
			// Envelope fields the fetcher never reads.
		default:
			b.Payload[key] = value
		}
	}
	return nil
}

// NotionClient talks to the Notion REST API. All calls are sequential and
// awaited to completion; there are no retries beyond what net/http does.
type NotionClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// NotionClientOption configures a NotionClient.
type NotionClientOption func(*NotionClient)

// WithNotionBaseURL overrides the API endpoint, used by tests.
func WithNotionBaseURL(u string) NotionClientOption {
	return func(c *NotionClient) { c.baseURL = u }
}

// WithNotionHTTPClient overrides the underlying HTTP client.
func WithNotionHTTPClient(hc *http.Client) NotionClientOption {
	return func(c *NotionClient) { c.client = hc }
}

// NewNotionClient creates an authenticated Notion API client.
func NewNotionClient(token string, opts ...NotionClientOption) *NotionClient {
	c := &NotionClient{
		token:   token,
		baseURL: notionBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type queryRequest struct {
	Filter      *queryFilter `json:"filter,omitempty"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size,omitempty"`
}

type queryFilter struct {
	Property string       `json:"property"`
	Status   statusEquals `json:"status"`
}

type statusEquals struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results    []NotionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

type childrenResponse struct {
	Results    []NotionBlock `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor"`
}

// QueryDatabase returns every page whose status property equals status,
// following the continuation cursor until the API reports no more results.
// Order is preserved across result pages.
func (c *NotionClient) QueryDatabase(ctx context.Context, databaseID, status string) ([]NotionPage, error) {
	endpoint := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)

	var all []NotionPage
	cursor := ""
	for {
		reqBody := queryRequest{
			Filter: &queryFilter{
				Property: statusProperty,
				Status:   statusEquals{Equals: status},
			},
			StartCursor: cursor,
		}

		var page queryResponse
		if err := c.post(ctx, endpoint, reqBody, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Results...)
		LogDebug("Fetched %d page(s) (total: %d)", len(page.Results), len(all))

		if !page.HasMore {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// BlockChildren returns the direct children of a block or page, following
// the continuation cursor until exhausted. It does not recurse; the fetcher
// owns the tree walk.
func (c *NotionClient) BlockChildren(ctx context.Context, blockID string) ([]NotionBlock, error) {
	endpoint := fmt.Sprintf("%s/blocks/%s/children", c.baseURL, blockID)

	var all []NotionBlock
	cursor := ""
	for {
		u := endpoint
		if cursor != "" {
			u = endpoint + "?start_cursor=" + url.QueryEscape(cursor)
		}

		var page childrenResponse
		if err := c.get(ctx, u, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Results...)

		if !page.HasMore {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// ProbeDatabase issues a single-result query, used by healthcheck to verify
// the token and database id without pulling real data.
func (c *NotionClient) ProbeDatabase(ctx context.Context, databaseID string) error {
	endpoint := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)
	var resp queryResponse
	return c.post(ctx, endpoint, queryRequest{PageSize: 1}, &resp)
}

func (c *NotionClient) post(ctx context.Context, endpoint string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, endpoint, out)
}

func (c *NotionClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, endpoint, out)
}

func (c *NotionClient) do(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return &NotionAPIError{Endpoint: endpoint, Err: err}
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return &NotionAPIError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &NotionAPIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &NotionAPIError{Endpoint: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
