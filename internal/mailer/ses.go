package mailer

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/logger"
)

// sesTagUnsafe matches characters SES rejects in tag values.
var sesTagUnsafe = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESClient sends through AWS SES v2.
type SESClient struct {
	api sesAPI
}

// NewSESClient builds an SES sender. Without static keys the default AWS
// credential chain is used. The SDK retryer is limited to one attempt: a
// send is never repeated.
func NewSESClient(ctx context.Context, accessKey, secretKey, region string, optFns ...func(*sesv2.Options)) (*SESClient, error) {
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithRetryMaxAttempts(1),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESClient{api: sesv2.NewFromConfig(cfg, optFns...)}, nil
}

func (c *SESClient) Name() string { return "ses" }

// Send delivers one message with the outreach tags as SES message tags.
func (c *SESClient) Send(ctx context.Context, msg *domain.OutboundEmail) (*domain.SendResult, error) {
	from := msg.FromEmail
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, msg.FromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{msg.ToEmail}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.TextBody != "" {
		input.Content.Simple.Body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}
	for i, tag := range msg.Tags {
		input.EmailTags = append(input.EmailTags, types.MessageTag{
			Name:  aws.String(fmt.Sprintf("tag%d", i)),
			Value: aws.String(sesTagUnsafe.ReplaceAllString(tag, "_")),
		})
	}

	out, err := c.api.SendEmail(ctx, input)
	if err != nil {
		logger.Warn("ses send failed", "to", msg.ToEmail, "error", err)
		return failed(c.Name(), err.Error()), nil
	}

	return &domain.SendResult{
		Success:   true,
		MessageID: aws.ToString(out.MessageId),
		Provider:  c.Name(),
		SentAt:    time.Now().UTC(),
	}, nil
}
