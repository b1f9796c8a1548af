package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/telekom/daily-mailer/pkg/config"
)

type resendTransport struct {
	client *resend.Client
	log    *zap.SugaredLogger
}

// NewResendTransport creates a transport that delivers through the Resend API.
func NewResendTransport(apiKey string, log *zap.SugaredLogger) Transport {
	return newResendTransport(resend.NewClient(apiKey), log)
}

func newResendTransport(client *resend.Client, log *zap.SugaredLogger) *resendTransport {
	log = log.Named("resend")
	log.Info("Initializing Resend transport")
	return &resendTransport{client: client, log: log}
}

func (r *resendTransport) Name() string {
	return config.TransportResend
}

func (r *resendTransport) Deliver(msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.TextBody,
		Html:    msg.HTMLBody,
	}

	sent, err := r.client.Emails.SendWithContext(context.Background(), params)
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	return sent.Id, nil
}
