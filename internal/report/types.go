package report

import (
	"time"

	"github.com/ppiankov/prowlerstat/internal/analyzer"
	"github.com/ppiankov/prowlerstat/internal/prowler"
)

// Reporter renders the statistics of a single scan.
type Reporter interface {
	Generate(data Data) error
}

// ComparisonReporter renders the difference between two scans.
type ComparisonReporter interface {
	GenerateComparison(data ComparisonData) error
}

// Data is everything a reporter needs to render a single scan.
type Data struct {
	Tool      string            `json:"tool"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Target    Target            `json:"target"`
	Stats     *analyzer.Stats   `json:"stats"`
	Findings  []prowler.Finding `json:"-"`
	Limits    Limits            `json:"-"`
}

// ComparisonData is everything a reporter needs to render a before/after diff.
type ComparisonData struct {
	Tool       string               `json:"tool"`
	Version    string               `json:"version"`
	Timestamp  time.Time            `json:"timestamp"`
	Target     Target               `json:"target"`
	Comparison *analyzer.Comparison `json:"comparison"`
	Limits     Limits               `json:"-"`
}

// Target identifies the results files a report was built from.
type Target struct {
	Type    string   `json:"type"`
	Files   []string `json:"files"`
	URIHash string   `json:"uri_hash"`
}

// Limits bounds how much detail the text report prints.
type Limits struct {
	TopServices int
	Samples     int
	DetailWidth int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{TopServices: 10, Samples: 5, DetailWidth: 80}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.TopServices <= 0 {
		l.TopServices = d.TopServices
	}
	if l.Samples <= 0 {
		l.Samples = d.Samples
	}
	if l.DetailWidth <= 0 {
		l.DetailWidth = d.DetailWidth
	}
	return l
}
