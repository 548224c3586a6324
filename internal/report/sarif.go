package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/prowlerstat/internal/prowler"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// SARIFReporter writes failing checks as SARIF v2.1.0.
type SARIFReporter struct {
	Writer io.Writer
}

// Generate writes SARIF v2.1.0 output with one result per failing check.
func (r *SARIFReporter) Generate(data Data) error {
	var (
		rules   = []sarifRule{}
		seen    = make(map[string]bool)
		results = make([]sarifResult, 0, len(data.Findings))
	)

	for _, f := range data.Findings {
		if f.Status != prowler.StatusFail {
			continue
		}

		id := ruleID(f)
		level := sarifLevel(f.Severity)
		if !seen[id] {
			seen[id] = true
			rules = append(rules, sarifRule{
				ID:               id,
				ShortDescription: sarifMessage{Text: firstNonEmpty(f.CheckTitle, id)},
				DefaultConfig:    sarifDefaultLevel{Level: level},
			})
		}

		results = append(results, sarifResult{
			RuleID:  id,
			Level:   level,
			Message: sarifMessage{Text: firstNonEmpty(f.StatusExtended, f.CheckTitle, id)},
			Locations: []sarifLoc{
				{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: sarifArtifact{
							URI: fmt.Sprintf("aws://%s/%s/%s", f.Region, f.ServiceName, f.ResourceID),
						},
					},
				},
			},
			Props: map[string]any{
				"severity":  string(f.Severity),
				"service":   f.ServiceName,
				"accountId": f.AccountID,
			},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

func sarifLevel(s prowler.Severity) string {
	switch s {
	case prowler.SeverityCritical, prowler.SeverityHigh:
		return "error"
	case prowler.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

// ruleID prefers the Prowler check ID and falls back to the check title.
func ruleID(f prowler.Finding) string {
	return firstNonEmpty(f.CheckID, f.CheckTitle, "unknown_check")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
