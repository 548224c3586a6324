package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	configPath = ".prowlerstat.yaml"
	policyPath = "prowlerstat-policy.json"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate sample config and IAM policy",
		Long: `Creates a sample .prowlerstat.yaml config file and an IAM policy JSON file
granting the permissions needed to publish metrics and notifications.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func runInit(w io.Writer, force bool) error {
	wrote := 0

	ok, err := writeIfNotExists(w, configPath, sampleConfig, force)
	if err != nil {
		return err
	}
	if ok {
		wrote++
	}

	ok, err = writeIfNotExists(w, policyPath, sampleIAMPolicy, force)
	if err != nil {
		return err
	}
	if ok {
		wrote++
	}

	if wrote > 0 {
		fmt.Fprintf(w, "Created %d file(s)\n", wrote)
		fmt.Fprintln(w, "\nNext steps:")
		fmt.Fprintln(w, "  1. Edit .prowlerstat.yaml to customize report settings")
		fmt.Fprintln(w, "  2. Apply prowlerstat-policy.json to your AWS IAM role/user if you publish results")
		fmt.Fprintln(w, "  3. Run: prowlerstat prowler-output-<account>-<timestamp>.json")
	}
	return nil
}

// writeIfNotExists writes content to path and reports whether it did.
func writeIfNotExists(w io.Writer, path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "Skipping %s (already exists, use --force to overwrite)\n", path)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

const sampleConfig = `# prowlerstat configuration

# Output format: text, json or sarif
format: text

# File pattern used when no results file is given
pattern: "prowler-output-*.json"

# Number of services ranked by failure count
top_services: 10

# Number of critical/high failures shown as samples
sample_size: 5

# Characters of failure details shown per sample
detail_width: 80

# Timeout for loading results and publishing
timeout: 2m

# AWS settings used when publishing (or set AWS_PROFILE / AWS_REGION)
# profile: security
# region: us-east-1

# Send results to AWS besides standard output
# publish:
#   metrics: true
#   namespace: Prowler/Compliance
#   sns_topic: arn:aws:sns:us-east-1:123456789012:compliance-reports
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "ProwlerStatPublish",
      "Effect": "Allow",
      "Action": [
        "cloudwatch:PutMetricData",
        "sns:Publish"
      ],
      "Resource": "*"
    }
  ]
}
`
