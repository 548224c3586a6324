package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/prowlerstat/internal/analyzer"
	"github.com/ppiankov/prowlerstat/internal/prowler"
	"github.com/ppiankov/prowlerstat/internal/report"
	"github.com/spf13/cobra"
)

const toolName = "prowlerstat"

// UsageError reports an invalid combination of command-line options.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func runAnalyze(cmd *cobra.Command, opts *options, args []string) error {
	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	// Apply config file defaults where flags were not explicitly set
	applyConfigDefaults(cmd, opts)

	if opts.compare && (opts.before == "" || opts.after == "") {
		return usageError(cmd, "--compare requires --before and --after files")
	}

	if err := validateFormat(opts.format, opts.compare); err != nil {
		return err
	}

	if opts.compare {
		return runCompare(ctx, cmd, opts)
	}

	path, err := resolveResultsFile(cmd, opts, args)
	if err != nil {
		return err
	}

	findings, err := prowler.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	stats := analyzer.Analyze(findings)

	data := report.Data{
		Tool:      toolName,
		Version:   version,
		Timestamp: time.Now().UTC(),
		Target:    target(path),
		Stats:     stats,
		Findings:  findings,
		Limits:    limits(opts),
	}

	w, closeFn, err := openOutput(cmd, opts.outputFile)
	if err != nil {
		return err
	}
	defer closeFn()

	reporter, err := selectReporter(opts.format, w)
	if err != nil {
		return err
	}
	if err := reporter.Generate(data); err != nil {
		return err
	}

	var msg strings.Builder
	report.WriteSummary(&msg, stats, data.Limits)
	subject := fmt.Sprintf("Prowler compliance: %d/%d checks passed (%.1f%%)", stats.Pass, stats.Total, stats.PassPercent())
	return publish(ctx, opts, stats, subject, msg.String())
}

func runCompare(ctx context.Context, cmd *cobra.Command, opts *options) error {
	before, after, err := prowler.LoadPair(ctx, opts.before, opts.after)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	comparison := analyzer.Compare(before, after)

	data := report.ComparisonData{
		Tool:       toolName,
		Version:    version,
		Timestamp:  time.Now().UTC(),
		Target:     target(opts.before, opts.after),
		Comparison: comparison,
		Limits:     limits(opts),
	}

	w, closeFn, err := openOutput(cmd, opts.outputFile)
	if err != nil {
		return err
	}
	defer closeFn()

	reporter, err := selectReporter(opts.format, w)
	if err != nil {
		return err
	}
	cr, ok := reporter.(report.ComparisonReporter)
	if !ok {
		return fmt.Errorf("format %s does not support --compare", opts.format)
	}
	if err := cr.GenerateComparison(data); err != nil {
		return err
	}

	var msg strings.Builder
	report.WriteComparison(&msg, comparison)
	subject := fmt.Sprintf("Prowler compliance change: %s checks fixed", report.Signed(comparison.PassImprovement))
	return publish(ctx, opts, comparison.After, subject, msg.String())
}

// resolveResultsFile returns the positional file, or the newest file
// matching the configured pattern in the working directory.
func resolveResultsFile(cmd *cobra.Command, opts *options, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	path, err := prowler.FindLatest(".", opts.pattern)
	if err != nil {
		if errors.Is(err, prowler.ErrNoResults) {
			return "", usageError(cmd, "no Prowler output file specified and none found in current directory")
		}
		return "", err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Using most recent scan: %s\n", path)
	return path, nil
}

func applyConfigDefaults(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	cfg := opts.cfg

	if !flags.Changed("format") && cfg.Format != "" {
		opts.format = cfg.Format
	}
	if !flags.Changed("pattern") && cfg.Pattern != "" {
		opts.pattern = cfg.Pattern
	}
	if !flags.Changed("top") && cfg.TopServices > 0 {
		opts.topServices = cfg.TopServices
	}
	if !flags.Changed("samples") && cfg.SampleSize > 0 {
		opts.samples = cfg.SampleSize
	}
	if !flags.Changed("detail-width") && cfg.DetailWidth > 0 {
		opts.detailWidth = cfg.DetailWidth
	}
	if !flags.Changed("timeout") && cfg.TimeoutDuration() > 0 {
		opts.timeout = cfg.TimeoutDuration()
	}
	if !flags.Changed("profile") && cfg.Profile != "" {
		opts.profile = cfg.Profile
	}
	if !flags.Changed("region") && cfg.Region != "" {
		opts.region = cfg.Region
	}
	if !flags.Changed("publish-metrics") && cfg.Publish.Metrics {
		opts.publishMetrics = true
	}
	if !flags.Changed("metrics-namespace") && cfg.Publish.Namespace != "" {
		opts.metricsNamespace = cfg.Publish.Namespace
	}
	if !flags.Changed("sns-topic") && cfg.Publish.SNSTopic != "" {
		opts.snsTopic = cfg.Publish.SNSTopic
	}
}

func validateFormat(format string, compare bool) error {
	switch format {
	case "text", "json":
		return nil
	case "sarif":
		if compare {
			return fmt.Errorf("format sarif does not support --compare (use text or json)")
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}

func selectReporter(format string, w io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}

// openOutput returns the report destination and a function that closes it.
func openOutput(cmd *cobra.Command, outputFile string) (io.Writer, func(), error) {
	if outputFile == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func usageError(cmd *cobra.Command, msg string) error {
	_ = cmd.Usage()
	return &UsageError{Msg: msg}
}

func target(files ...string) report.Target {
	return report.Target{
		Type:    "prowler-results",
		Files:   files,
		URIHash: computeTargetHash(files),
	}
}

func limits(opts *options) report.Limits {
	return report.Limits{
		TopServices: opts.topServices,
		Samples:     opts.samples,
		DetailWidth: opts.detailWidth,
	}
}
