package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/prowlerstat/internal/analyzer"
	"github.com/ppiankov/prowlerstat/internal/prowler"
)

const (
	ruleWidth        = 60
	untitledCheck    = "(untitled check)"
	missingDetails   = "(no details)"
	truncationSuffix = "..."
)

// TextReporter writes a human-readable summary.
type TextReporter struct {
	Writer io.Writer
}

// Generate writes the scan summary.
func (r *TextReporter) Generate(data Data) error {
	var b strings.Builder
	WriteSummary(&b, data.Stats, data.Limits)
	if _, err := io.WriteString(r.Writer, b.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

// GenerateComparison writes the before/after improvement analysis.
func (r *TextReporter) GenerateComparison(data ComparisonData) error {
	var b strings.Builder
	WriteComparison(&b, data.Comparison)
	if _, err := io.WriteString(r.Writer, b.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

// WriteSummary renders scan statistics as text.
func WriteSummary(b *strings.Builder, stats *analyzer.Stats, limits Limits) {
	limits = limits.withDefaults()

	header(b, "PROWLER COMPLIANCE SCAN SUMMARY")

	fmt.Fprintf(b, "\nOverall Results:\n")
	fmt.Fprintf(b, "  Total Checks: %d\n", stats.Total)
	fmt.Fprintf(b, "  Passed: %d (%.1f%%)\n", stats.Pass, stats.PassPercent())
	fmt.Fprintf(b, "  Failed: %d (%.1f%%)\n", stats.Fail, stats.FailPercent())
	fmt.Fprintf(b, "  Manual: %d\n", stats.Info)

	fmt.Fprintf(b, "\nSeverity Breakdown (Failures Only):\n")
	for _, sev := range prowler.Severities {
		if n := stats.SeverityCount(sev); n > 0 {
			fmt.Fprintf(b, "  %s: %d\n", strings.ToUpper(string(sev)), n)
		}
	}

	fmt.Fprintf(b, "\nTop %d Services by Failure Count:\n", limits.TopServices)
	for _, s := range stats.TopServices(limits.TopServices) {
		fmt.Fprintf(b, "  %-20s: %3d failures, %3d passes\n", s.Service, s.Fail, s.Pass)
	}

	if n := len(stats.CriticalFailures); n > 0 {
		fmt.Fprintf(b, "\nCRITICAL FAILURES (%d):\n", n)
		for _, f := range sample(stats.CriticalFailures, limits.Samples) {
			fmt.Fprintf(b, "\n  • %s\n", orPlaceholder(f.CheckTitle, untitledCheck))
			fmt.Fprintf(b, "    Service: %s\n", f.ServiceName)
			fmt.Fprintf(b, "    Details: %s\n", truncate(orPlaceholder(f.StatusExtended, missingDetails), limits.DetailWidth))
		}
	}

	if n := len(stats.HighFailures); n > 0 {
		shown := sample(stats.HighFailures, limits.Samples)
		fmt.Fprintf(b, "\nHIGH SEVERITY FAILURES (showing %d of %d):\n", len(shown), n)
		for _, f := range shown {
			fmt.Fprintf(b, "\n  • %s\n", orPlaceholder(f.CheckTitle, untitledCheck))
			fmt.Fprintf(b, "    Service: %s\n", f.ServiceName)
		}
	}
}

// WriteComparison renders a before/after comparison as text.
func WriteComparison(b *strings.Builder, c *analyzer.Comparison) {
	header(b, "COMPLIANCE IMPROVEMENT ANALYSIS")

	fmt.Fprintf(b, "\nOverall Improvement:\n")
	fmt.Fprintf(b, "  Before: %d/%d passed (%.1f%%)\n", c.Before.Pass, c.Before.Total, c.Before.PassPercent())
	fmt.Fprintf(b, "  After:  %d/%d passed (%.1f%%)\n", c.After.Pass, c.After.Total, c.After.PassPercent())
	fmt.Fprintf(b, "  Change: %s checks fixed\n", Signed(c.PassImprovement))
	fmt.Fprintf(b, "  Failures: %d -> %d (%s resolved)\n", c.Before.Fail, c.After.Fail, Signed(c.FailImprovement))

	fmt.Fprintf(b, "\nSeverity Changes:\n")
	for _, d := range c.SeverityChanges {
		fmt.Fprintf(b, "  %-8s: %3d → %3d (%s)\n", strings.ToUpper(d.Severity), d.Before, d.After, Signed(d.Change))
	}
}

func header(b *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Signed formats n with an explicit "+" when positive.
func Signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func sample(findings []prowler.Finding, n int) []prowler.Finding {
	if len(findings) > n {
		return findings[:n]
	}
	return findings
}

// truncate cuts s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width]) + truncationSuffix
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
