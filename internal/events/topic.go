// internal/events/topic.go
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"mergington-activities/internal/models"
)

type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// TopicSink publishes the event JSON to an SNS topic with the event type
// as a message attribute for subscription filtering.
type TopicSink struct {
	sns      SNSService
	topicARN string
}

func NewTopicSink(client SNSService, topicARN string) *TopicSink {
	return &TopicSink{sns: client, topicARN: topicARN}
}

func (s *TopicSink) Name() string { return "sns" }

func (s *TopicSink) Publish(ctx context.Context, event models.RosterEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = s.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(data)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(event.Type)},
			"activity":  {DataType: aws.String("String"), StringValue: aws.String(event.Activity)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
