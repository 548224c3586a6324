package report

import (
	"encoding/json"
	"fmt"
	"io"
)

const jsonSchema = "prowlerstat/v1"

// JSONReporter writes the statistics as a versioned JSON envelope.
type JSONReporter struct {
	Writer io.Writer
}

type jsonEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

type jsonComparisonEnvelope struct {
	Schema string `json:"$schema"`
	ComparisonData
}

// Generate writes the scan statistics as JSON.
func (r *JSONReporter) Generate(data Data) error {
	return r.encode(jsonEnvelope{Schema: jsonSchema, Data: data})
}

// GenerateComparison writes the comparison as JSON.
func (r *JSONReporter) GenerateComparison(data ComparisonData) error {
	return r.encode(jsonComparisonEnvelope{Schema: jsonSchema, ComparisonData: data})
}

func (r *JSONReporter) encode(v any) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
