package commands

import (
	"context"
	"log/slog"

	"github.com/ppiankov/prowlerstat/internal/analyzer"
	"github.com/ppiankov/prowlerstat/internal/aws"
	"github.com/ppiankov/prowlerstat/internal/config"
)

type statsPublisher interface {
	Publish(ctx context.Context, stats *analyzer.Stats) error
}

type reportNotifier interface {
	Notify(ctx context.Context, subject, message string) (string, error)
}

// publishTargets holds the destinations enabled for one run. Nil fields are skipped.
type publishTargets struct {
	metrics  statsPublisher
	notifier reportNotifier
}

// buildPublishTargets creates AWS-backed destinations. Tests replace it.
var buildPublishTargets = func(ctx context.Context, opts *options) (*publishTargets, error) {
	client, err := aws.NewClient(ctx, opts.profile, opts.region)
	if err != nil {
		return nil, err
	}

	targets := &publishTargets{}
	if opts.publishMetrics {
		targets.metrics = aws.NewMetricsPublisher(client.CloudWatch(), opts.metricsNamespace)
	}
	if opts.snsTopic != "" {
		targets.notifier = aws.NewNotifier(client.SNS(), opts.snsTopic)
	}
	return targets, nil
}

// publish sends stats to CloudWatch and the text report to SNS when enabled.
func publish(ctx context.Context, opts *options, stats *analyzer.Stats, subject, message string) error {
	dest := config.Publish{Metrics: opts.publishMetrics, Namespace: opts.metricsNamespace, SNSTopic: opts.snsTopic}
	if !dest.Enabled() {
		return nil
	}

	targets, err := buildPublishTargets(ctx, opts)
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	if targets.metrics != nil {
		if err := targets.metrics.Publish(ctx, stats); err != nil {
			return enhanceError("publish metrics", err)
		}
		slog.Info("Published CloudWatch metrics", "namespace", opts.metricsNamespace)
	}

	if targets.notifier != nil {
		id, err := targets.notifier.Notify(ctx, subject, message)
		if err != nil {
			return enhanceError("send SNS notification", err)
		}
		slog.Info("Sent SNS notification", "topic", opts.snsTopic, "message_id", id)
	}
	return nil
}
