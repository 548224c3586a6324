package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/ppiankov/prowlerstat/internal/analyzer"
	"github.com/ppiankov/prowlerstat/internal/prowler"
)

type mockCloudWatchClient struct {
	inputs          []*cloudwatch.PutMetricDataInput
	putMetricDataFn func(ctx context.Context, input *cloudwatch.PutMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

func (m *mockCloudWatchClient) PutMetricData(ctx context.Context, input *cloudwatch.PutMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.putMetricDataFn != nil {
		return m.putMetricDataFn(ctx, input, opts...)
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func sampleStats() *analyzer.Stats {
	return analyzer.Analyze([]prowler.Finding{
		{Status: prowler.StatusPass, Severity: prowler.SeverityLow, ServiceName: "s3"},
		{Status: prowler.StatusFail, Severity: prowler.SeverityCritical, ServiceName: "iam"},
		{Status: prowler.StatusFail, Severity: prowler.SeverityHigh, ServiceName: "iam"},
		{Status: prowler.StatusInfo, Severity: prowler.SeverityLow, ServiceName: "ec2"},
	})
}

func findDatum(datums []cwtypes.MetricDatum, name, dimName, dimValue string) (cwtypes.MetricDatum, bool) {
	for _, d := range datums {
		if awssdk.ToString(d.MetricName) != name {
			continue
		}
		if dimName == "" && len(d.Dimensions) == 0 {
			return d, true
		}
		for _, dim := range d.Dimensions {
			if awssdk.ToString(dim.Name) == dimName && awssdk.ToString(dim.Value) == dimValue {
				return d, true
			}
		}
	}
	return cwtypes.MetricDatum{}, false
}

func TestMetricsPublisher_Publish(t *testing.T) {
	mock := &mockCloudWatchClient{}
	pub := NewMetricsPublisher(mock, "")
	pub.now = func() time.Time { return time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC) }

	if err := pub.Publish(context.Background(), sampleStats()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 PutMetricData call, got %d", len(mock.inputs))
	}
	input := mock.inputs[0]
	if awssdk.ToString(input.Namespace) != DefaultNamespace {
		t.Fatalf("expected namespace %s, got %s", DefaultNamespace, awssdk.ToString(input.Namespace))
	}

	tests := []struct {
		name, dimName, dimValue string
		want                    float64
	}{
		{"ChecksTotal", "", "", 4},
		{"ChecksPassed", "", "", 1},
		{"ChecksFailed", "", "", 2},
		{"ChecksManual", "", "", 1},
		{"PassRate", "", "", 25},
		{"FailedChecks", "Severity", "critical", 1},
		{"FailedChecks", "Severity", "high", 1},
		{"FailedChecks", "Severity", "medium", 0},
		{"FailedChecks", "Service", "iam", 2},
	}
	for _, tt := range tests {
		d, ok := findDatum(input.MetricData, tt.name, tt.dimName, tt.dimValue)
		if !ok {
			t.Fatalf("missing datum %s %s=%s", tt.name, tt.dimName, tt.dimValue)
		}
		if awssdk.ToFloat64(d.Value) != tt.want {
			t.Fatalf("%s %s=%s: expected %f, got %f", tt.name, tt.dimName, tt.dimValue, tt.want, awssdk.ToFloat64(d.Value))
		}
	}

	if _, ok := findDatum(input.MetricData, "FailedChecks", "Service", "s3"); ok {
		t.Fatal("services without failures should not be published")
	}
}

func TestMetricsPublisher_CustomNamespace(t *testing.T) {
	mock := &mockCloudWatchClient{}
	pub := NewMetricsPublisher(mock, "Security/Prowler")

	if err := pub.Publish(context.Background(), sampleStats()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := awssdk.ToString(mock.inputs[0].Namespace); got != "Security/Prowler" {
		t.Fatalf("expected custom namespace, got %s", got)
	}
}

func TestMetricsPublisher_Batches(t *testing.T) {
	var findings []prowler.Finding
	for i := 0; i < 1200; i++ {
		findings = append(findings, prowler.Finding{Status: prowler.StatusFail, Severity: prowler.SeverityLow, ServiceName: fmt.Sprintf("svc-%d", i)})
	}

	mock := &mockCloudWatchClient{}
	pub := NewMetricsPublisher(mock, "")

	if err := pub.Publish(context.Background(), analyzer.Analyze(findings)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.inputs) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(mock.inputs))
	}
	if len(mock.inputs[0].MetricData) != maxMetricDatums {
		t.Fatalf("expected first batch of %d, got %d", maxMetricDatums, len(mock.inputs[0].MetricData))
	}
}

func TestMetricsPublisher_Error(t *testing.T) {
	mock := &mockCloudWatchClient{
		putMetricDataFn: func(_ context.Context, _ *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
			return nil, errors.New("AccessDenied: not authorized")
		},
	}
	pub := NewMetricsPublisher(mock, "")

	err := pub.Publish(context.Background(), sampleStats())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("expected wrapped AWS error, got %v", err)
	}
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		batchSize int
		want      int
	}{
		{"empty", 0, 10, 0},
		{"single batch", 5, 10, 1},
		{"exact batch", 10, 10, 1},
		{"two batches", 15, 10, 2},
		{"default size", 1001, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.count)
			got := batch(items, tt.batchSize)
			if len(got) != tt.want {
				t.Fatalf("expected %d batches, got %d", tt.want, len(got))
			}
		})
	}
}
