package mail

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/telekom/daily-mailer/pkg/metrics"
	"github.com/telekom/daily-mailer/pkg/system"
)

// Mailer sends the fixed message through a transport. It holds no mutable
// state, so the scheduler and HTTP handlers may call Send concurrently.
type Mailer struct {
	transport Transport
	message   Message
	log       *zap.SugaredLogger
}

const tracerName = "github.com/telekom/daily-mailer/pkg/mail"

func NewMailer(transport Transport, msg Message, log *zap.SugaredLogger) *Mailer {
	return &Mailer{
		transport: transport,
		message:   msg,
		log:       log.Named("mailer"),
	}
}

// Message returns a copy of the message the mailer delivers.
func (m *Mailer) Message() Message {
	return m.message
}

// Send makes exactly one delivery attempt. Failures are logged and returned
// in the result; they are never retried.
func (m *Mailer) Send() SendResult {
	transport := m.transport.Name()
	_, span := otel.Tracer(tracerName).Start(context.Background(), "mail.Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("mail.transport", transport),
		attribute.String("mail.to", m.message.To),
	)

	start := time.Now()
	messageID, err := m.transport.Deliver(m.message)
	metrics.MailSendDuration.WithLabelValues(transport).Observe(time.Since(start).Seconds())

	result := Succeeded(messageID)
	if err != nil {
		result = Failed(err)
	}

	if !result.Success {
		span.SetStatus(codes.Error, result.Error)
		metrics.MailSendFailure.WithLabelValues(transport).Inc()
		m.log.Errorw("Error sending email",
			"timestamp", system.FormatTimestamp(time.Now()),
			"transport", transport,
			"to", m.message.To,
			"error", result.Error)
		return result
	}

	span.SetAttributes(attribute.String("mail.message_id", result.MessageID))
	metrics.MailSendSuccess.WithLabelValues(transport).Inc()
	m.log.Infow("Email sent successfully",
		"timestamp", system.FormatTimestamp(time.Now()),
		"transport", transport,
		"to", m.message.To,
		"messageID", result.MessageID)
	return result
}
