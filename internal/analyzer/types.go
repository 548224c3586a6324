package analyzer

import (
	"github.com/ppiankov/prowlerstat/internal/prowler"
)

// ServiceCounts holds pass/fail totals for one service.
type ServiceCounts struct {
	Pass int `json:"pass"`
	Fail int `json:"fail"`
}

// ServiceRank is a service paired with its counts, used for ranked output.
type ServiceRank struct {
	Service string `json:"service"`
	ServiceCounts
}

// Stats holds aggregated statistics about a set of findings.
type Stats struct {
	Total            int                      `json:"total"`
	Pass             int                      `json:"pass"`
	Fail             int                      `json:"fail"`
	Info             int                      `json:"info"`
	BySeverity       map[string]int           `json:"by_severity"`
	ByService        map[string]ServiceCounts `json:"by_service"`
	CriticalFailures []prowler.Finding        `json:"critical_failures"`
	HighFailures     []prowler.Finding        `json:"high_failures"`

	// serviceOrder records services in first-seen order.
	serviceOrder []string
}

// SeverityDelta is the change in failure count for one severity.
type SeverityDelta struct {
	Severity string `json:"severity"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Change   int    `json:"change"`
}

// Comparison holds the before/after statistics of two scans and their deltas.
type Comparison struct {
	Before          *Stats          `json:"before"`
	After           *Stats          `json:"after"`
	PassImprovement int             `json:"pass_improvement"`
	FailImprovement int             `json:"fail_improvement"`
	SeverityChanges []SeverityDelta `json:"severity_changes"`
}
