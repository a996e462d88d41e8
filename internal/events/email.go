// internal/events/email.go
package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"mergington-activities/internal/models"
)

type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// EmailSink mails the participant a confirmation of the roster change.
type EmailSink struct {
	ses  SESService
	from string
}

func NewEmailSink(client SESService, from string) *EmailSink {
	return &EmailSink{ses: client, from: from}
}

func (s *EmailSink) Name() string { return "ses" }

func (s *EmailSink) Publish(ctx context.Context, event models.RosterEvent) error {
	subject, body := renderConfirmation(event)

	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{event.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", event.Email, err)
	}
	return nil
}

func renderConfirmation(event models.RosterEvent) (string, string) {
	switch event.Type {
	case models.EventParticipantUnregistered:
		return fmt.Sprintf("You have left %s", event.Activity),
			fmt.Sprintf("%s has been removed from %s.", event.Email, event.Activity)
	default:
		return fmt.Sprintf("You are signed up for %s", event.Activity),
			fmt.Sprintf("%s is now signed up for %s.", event.Email, event.Activity)
	}
}
