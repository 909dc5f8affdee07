package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// NotionServer is an httptest server that plays back canned Notion API
// responses. Query responses are consumed in order; block-children responses
// are consumed in order per parent id.
type NotionServer struct {
	*httptest.Server

	mu             sync.Mutex
	queryResponses []string
	queryCalls     int
	blockResponses map[string][]string
	blockCalls     map[string]int
	AuthHeaders    []string
}

// NewNotionServer starts a mock Notion server. It is closed automatically
// when the test finishes.
func NewNotionServer(t *testing.T) *NotionServer {
	t.Helper()

	s := &NotionServer{
		blockResponses: make(map[string][]string),
		blockCalls:     make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

// BaseURL returns the value to pass as the client's API base.
func (s *NotionServer) BaseURL() string {
	return s.Server.URL + "/v1"
}

// AddQueryResponse appends one database-query response body.
func (s *NotionServer) AddQueryResponse(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryResponses = append(s.queryResponses, body)
}

// AddBlockResponse appends one block-children response body for a parent.
func (s *NotionServer) AddBlockResponse(parentID, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blockResponses[parentID] = append(s.blockResponses[parentID], body)
}

// QueryCalls reports how many database-query requests were served.
func (s *NotionServer) QueryCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryCalls
}

func (s *NotionServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AuthHeaders = append(s.AuthHeaders, r.Header.Get("Authorization"))

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// Expected shapes: v1/databases/{id}/query and v1/blocks/{id}/children
	switch {
	case len(parts) == 4 && parts[1] == "databases" && parts[3] == "query":
		if s.queryCalls >= len(s.queryResponses) {
			writeJSON(w, ResultsJSON(false, ""))
			s.queryCalls++
			return
		}
		writeJSON(w, s.queryResponses[s.queryCalls])
		s.queryCalls++

	case len(parts) == 4 && parts[1] == "blocks" && parts[3] == "children":
		parentID := parts[2]
		calls := s.blockCalls[parentID]
		responses := s.blockResponses[parentID]
		if calls >= len(responses) {
			writeJSON(w, ResultsJSON(false, ""))
			s.blockCalls[parentID]++
			return
		}
		writeJSON(w, responses[calls])
		s.blockCalls[parentID]++

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
