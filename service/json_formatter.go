package service

import (
	"encoding/json"
	"io"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/version"
)

// WriteJSON writes data as two-space indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// RunReportJSON is the machine-readable envelope of a pipeline run
type RunReportJSON struct {
	Version string                `json:"version"`
	Summary *Summary              `json:"summary"`
	Results []*domain.CheckResult `json:"results"`
}

// JSONFormatter renders the run report as JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Write emits the full run report
func (f *JSONFormatter) Write(writer io.Writer, summary *Summary, results []*domain.CheckResult) error {
	if results == nil {
		results = []*domain.CheckResult{}
	}
	return WriteJSON(writer, RunReportJSON{
		Version: version.Version,
		Summary: summary,
		Results: results,
	})
}
