package aws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/ppiankov/prowlerstat/internal/analyzer"
	"github.com/ppiankov/prowlerstat/internal/prowler"
)

const (
	// DefaultNamespace is the CloudWatch namespace used when none is configured.
	DefaultNamespace = "Prowler/Compliance"
	// maxMetricDatums is the maximum number of datums per PutMetricData call.
	maxMetricDatums = 1000
)

// CloudWatchAPI is the minimal interface for CloudWatch operations needed by the publisher.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, input *cloudwatch.PutMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsPublisher pushes scan statistics to CloudWatch as custom metrics.
type MetricsPublisher struct {
	client    CloudWatchAPI
	namespace string
	now       func() time.Time
}

// NewMetricsPublisher creates a publisher writing into the given namespace.
func NewMetricsPublisher(client CloudWatchAPI, namespace string) *MetricsPublisher {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &MetricsPublisher{client: client, namespace: namespace, now: time.Now}
}

// Publish sends check totals, pass rate, and failures per severity and per service.
// Known severities are always sent, so a drop to zero is visible on dashboards.
func (p *MetricsPublisher) Publish(ctx context.Context, stats *analyzer.Stats) error {
	datums := p.datums(stats)
	batches := batch(datums, maxMetricDatums)

	for i, b := range batches {
		slog.Debug("Publishing CloudWatch metrics", "batch", i+1, "total_batches", len(batches), "namespace", p.namespace, "count", len(b))
		_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  awssdk.String(p.namespace),
			MetricData: b,
		})
		if err != nil {
			return fmt.Errorf("put metric data (%s): %w", p.namespace, err)
		}
	}
	return nil
}

func (p *MetricsPublisher) datums(stats *analyzer.Stats) []cwtypes.MetricDatum {
	ts := p.now().UTC()
	count := func(name string, v int, dims ...cwtypes.Dimension) cwtypes.MetricDatum {
		return cwtypes.MetricDatum{
			MetricName: awssdk.String(name),
			Value:      awssdk.Float64(float64(v)),
			Unit:       cwtypes.StandardUnitCount,
			Timestamp:  awssdk.Time(ts),
			Dimensions: dims,
		}
	}

	datums := []cwtypes.MetricDatum{
		count("ChecksTotal", stats.Total),
		count("ChecksPassed", stats.Pass),
		count("ChecksFailed", stats.Fail),
		count("ChecksManual", stats.Info),
		{
			MetricName: awssdk.String("PassRate"),
			Value:      awssdk.Float64(stats.PassPercent()),
			Unit:       cwtypes.StandardUnitPercent,
			Timestamp:  awssdk.Time(ts),
		},
	}

	for _, sev := range prowler.Severities {
		datums = append(datums, count("FailedChecks", stats.SeverityCount(sev), dimension("Severity", string(sev))))
	}
	for _, s := range stats.TopServices(len(stats.ByService)) {
		datums = append(datums, count("FailedChecks", s.Fail, dimension("Service", s.Service)))
	}
	return datums
}

func dimension(name, value string) cwtypes.Dimension {
	return cwtypes.Dimension{Name: awssdk.String(name), Value: awssdk.String(value)}
}

// batch splits items into batches of the given size.
func batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = maxMetricDatums
	}

	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}
