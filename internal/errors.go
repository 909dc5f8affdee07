package internal

import "fmt"

// ConfigError represents missing or invalid required configuration
type ConfigError struct {
	Field string
	Hint  string
}

func (e *ConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("config error: %s is required (%s)", e.Field, e.Hint)
	}
	return fmt.Sprintf("config error: %s is required", e.Field)
}

// NotionAPIError represents a failed Notion API call
type NotionAPIError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *NotionAPIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notion api error: %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("notion api error: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *NotionAPIError) Unwrap() error {
	return e.Err
}

// ExpansionError represents a failure expanding a single page's block tree
type ExpansionError struct {
	PageID string
	Err    error
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("expansion error [%s]: %v", e.PageID, e.Err)
}

func (e *ExpansionError) Unwrap() error {
	return e.Err
}

// GenerationError represents a failed model call for one project group
type GenerationError struct {
	Project string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation error [%s]: %v", e.Project, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
