package aws

import (
	"context"
	"fmt"
	"log/slog"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const (
	// maxSubjectLen is the SNS limit for email subjects.
	maxSubjectLen = 100
	// maxMessageBytes is the SNS limit for a message body.
	maxMessageBytes = 256 * 1024
	truncatedNote   = "\n[report truncated]\n"
)

// SNSAPI is the minimal interface for SNS operations.
type SNSAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier sends rendered reports to an SNS topic.
type Notifier struct {
	client   SNSAPI
	topicARN string
}

// NewNotifier creates a notifier for the given topic.
func NewNotifier(client SNSAPI, topicARN string) *Notifier {
	return &Notifier{client: client, topicARN: topicARN}
}

// Notify publishes message to the topic and returns the SNS message ID.
func (n *Notifier) Notify(ctx context.Context, subject, message string) (string, error) {
	out, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String(clampSubject(subject)),
		Message:  awssdk.String(clampMessage(message)),
	})
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", n.topicARN, err)
	}

	id := awssdk.ToString(out.MessageId)
	slog.Debug("Published SNS notification", "topic", n.topicARN, "message_id", id)
	return id, nil
}

func clampSubject(s string) string {
	runes := []rune(s)
	if len(runes) > maxSubjectLen {
		return string(runes[:maxSubjectLen])
	}
	return s
}

func clampMessage(s string) string {
	if len(s) <= maxMessageBytes {
		return s
	}
	cut := maxMessageBytes - len(truncatedNote)
	// back up to a rune boundary
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + truncatedNote
}
