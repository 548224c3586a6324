package analyzer

import (
	"github.com/ppiankov/prowlerstat/internal/prowler"
)

// Compare aggregates two scans independently and computes their deltas.
// A positive PassImprovement means more checks pass; a positive
// FailImprovement means fewer checks fail.
func Compare(before, after []prowler.Finding) *Comparison {
	return CompareStats(Analyze(before), Analyze(after))
}

// CompareStats computes deltas between two already aggregated scans.
func CompareStats(before, after *Stats) *Comparison {
	c := &Comparison{
		Before:          before,
		After:           after,
		PassImprovement: after.Pass - before.Pass,
		FailImprovement: before.Fail - after.Fail,
		SeverityChanges: []SeverityDelta{},
	}

	for _, sev := range prowler.Severities {
		b := before.SeverityCount(sev)
		a := after.SeverityCount(sev)
		if b == 0 && a == 0 {
			continue
		}
		c.SeverityChanges = append(c.SeverityChanges, SeverityDelta{
			Severity: string(sev),
			Before:   b,
			After:    a,
			Change:   a - b,
		})
	}

	return c
}
