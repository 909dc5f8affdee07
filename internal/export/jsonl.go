package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/notion-standup/internal"
)

// JSONLExporter exports standup documents as one JSON page object per line
type JSONLExporter struct{}

// Export writes each page of the document on its own line
func (e *JSONLExporter) Export(doc *internal.StandupDocument, w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := range doc.Pages {
		if err := enc.Encode(&doc.Pages[i]); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
