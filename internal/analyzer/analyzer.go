package analyzer

import (
	"sort"

	"github.com/ppiankov/prowlerstat/internal/prowler"
)

// Analyze walks the findings once and computes aggregated statistics.
// Statuses other than PASS, FAIL and INFO are counted only in Total.
func Analyze(findings []prowler.Finding) *Stats {
	stats := &Stats{
		Total:            len(findings),
		BySeverity:       make(map[string]int),
		ByService:        make(map[string]ServiceCounts),
		CriticalFailures: []prowler.Finding{},
		HighFailures:     []prowler.Finding{},
	}

	for _, f := range findings {
		switch f.Status {
		case prowler.StatusPass:
			stats.Pass++
			stats.bumpService(f.ServiceName, 1, 0)
		case prowler.StatusFail:
			stats.Fail++
			stats.bumpService(f.ServiceName, 0, 1)
			stats.BySeverity[string(f.Severity)]++

			switch f.Severity {
			case prowler.SeverityCritical:
				stats.CriticalFailures = append(stats.CriticalFailures, f)
			case prowler.SeverityHigh:
				stats.HighFailures = append(stats.HighFailures, f)
			}
		case prowler.StatusInfo:
			stats.Info++
		}
	}

	return stats
}

func (s *Stats) bumpService(name string, pass, fail int) {
	c, ok := s.ByService[name]
	if !ok {
		s.serviceOrder = append(s.serviceOrder, name)
	}
	c.Pass += pass
	c.Fail += fail
	s.ByService[name] = c
}

// TopServices returns up to n services with at least one failure, ordered by
// failure count descending. Ties keep the order in which services were first seen.
func (s *Stats) TopServices(n int) []ServiceRank {
	ranked := make([]ServiceRank, 0, len(s.ByService))
	for _, name := range s.services() {
		c := s.ByService[name]
		if c.Fail == 0 {
			continue
		}
		ranked = append(ranked, ServiceRank{Service: name, ServiceCounts: c})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fail > ranked[j].Fail
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// services returns service names in first-seen order. Stats built outside
// Analyze have no recorded order and fall back to sorted names.
func (s *Stats) services() []string {
	if len(s.serviceOrder) == len(s.ByService) {
		return s.serviceOrder
	}
	names := make([]string, 0, len(s.ByService))
	for name := range s.ByService {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PassPercent returns the share of passing checks, or 0 when there are none.
func (s *Stats) PassPercent() float64 {
	return percent(s.Pass, s.Total)
}

// FailPercent returns the share of failing checks, or 0 when there are none.
func (s *Stats) FailPercent() float64 {
	return percent(s.Fail, s.Total)
}

// SeverityCount returns the failure count for a severity.
func (s *Stats) SeverityCount(sev prowler.Severity) int {
	return s.BySeverity[string(sev)]
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
