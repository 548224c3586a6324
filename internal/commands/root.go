package commands

import (
	"log/slog"
	"time"

	"github.com/ppiankov/prowlerstat/internal/config"
	"github.com/ppiankov/prowlerstat/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// options holds the flags of one root command invocation.
type options struct {
	verbose          bool
	compare          bool
	before           string
	after            string
	format           string
	outputFile       string
	pattern          string
	topServices      int
	samples          int
	detailWidth      int
	publishMetrics   bool
	metricsNamespace string
	snsTopic         string
	profile          string
	region           string
	timeout          time.Duration
	cfg              config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "prowlerstat [file]",
		Short: "prowlerstat — Prowler compliance scan summarizer",
		Long: `prowlerstat reads Prowler JSON results and prints pass/fail totals, failures
by severity, the services with the most failures, and sample critical and
high severity failures.

With --compare it diffs two scans and shows how compliance changed.
Without a file argument, the newest prowler-output-*.json in the current
directory is used.`,
		Example: `  prowlerstat prowler-output-123456789012-20260224.json
  prowlerstat --compare --before last-month.json --after today.json
  prowlerstat scan.json --format sarif -o prowler.sarif`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(opts.verbose)
			loaded, err := config.Load(".")
			if err != nil {
				slog.Warn("Failed to load config file", "error", err)
			} else {
				opts.cfg = loaded
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	f := cmd.Flags()
	f.BoolVar(&opts.compare, "compare", false, "Compare two scan results (requires --before and --after)")
	f.StringVar(&opts.before, "before", "", "Before scan file (for comparison)")
	f.StringVar(&opts.after, "after", "", "After scan file (for comparison)")
	f.StringVar(&opts.format, "format", "text", "Output format: text, json, sarif")
	f.StringVarP(&opts.outputFile, "output", "o", "", "Output file path (default: stdout)")
	f.StringVar(&opts.pattern, "pattern", "", "File pattern used when no file is given (default: prowler-output-*.json)")
	f.IntVar(&opts.topServices, "top", 0, "Number of services to rank by failure count (default: 10)")
	f.IntVar(&opts.samples, "samples", 0, "Number of critical/high failures to show (default: 5)")
	f.IntVar(&opts.detailWidth, "detail-width", 0, "Characters of failure details to show (default: 80)")
	f.BoolVar(&opts.publishMetrics, "publish-metrics", false, "Publish summary metrics to CloudWatch")
	f.StringVar(&opts.metricsNamespace, "metrics-namespace", "", "CloudWatch namespace (default: Prowler/Compliance)")
	f.StringVar(&opts.snsTopic, "sns-topic", "", "SNS topic ARN to send the text report to")
	f.StringVar(&opts.profile, "profile", "", "AWS profile name used for publishing")
	f.StringVar(&opts.region, "region", "", "AWS region used for publishing")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Timeout for loading and publishing")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return newRootCmd().Execute()
}
