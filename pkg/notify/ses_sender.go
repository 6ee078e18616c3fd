// Package notify delivers vendor-facing notifications. The engine only
// depends on the SenderInterface; SES is the concrete channel.
package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// SenderInterface is the delivery channel used by the dispatcher.
type SenderInterface interface {
	Send(ctx context.Context, to, subject, plainTextContent, htmlContent string) error
}

// SESV2Sender implements SenderInterface using AWS SES v2.
type SESV2Sender struct {
	client    *sesv2.Client
	fromEmail string
	logger    *zap.Logger
}

// NewSESV2Sender creates a new sender for Amazon SES. Credentials are
// loaded from the environment.
func NewSESV2Sender(ctx context.Context, region, fromEmail string, logger *zap.Logger) (*SESV2Sender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &SESV2Sender{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		logger:    logger,
	}, nil
}

// Send delivers one notification using the AWS SES v2 API.
func (s *SESV2Sender) Send(ctx context.Context, to, subject, plainTextContent, htmlContent string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: &s.fromEmail,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    &subject,
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    &plainTextContent,
						Charset: aws.String("UTF-8"),
					},
					Html: &types.Content{
						Data:    &htmlContent,
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		s.logger.Error("failed to send notification via SES", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("notification sent", zap.String("to", to))
	return nil
}
