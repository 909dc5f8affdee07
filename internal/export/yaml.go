package export

import (
	"io"

	"github.com/iksnae/notion-standup/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports standup documents in YAML format
type YAMLExporter struct{}

// Export exports a standup document to YAML format
func (e *YAMLExporter) Export(doc *internal.StandupDocument, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
