package scheduler

import (
	"time"

	"go.uber.org/zap"

	"github.com/telekom/daily-mailer/pkg/mail"
	"github.com/telekom/daily-mailer/pkg/metrics"
	"github.com/telekom/daily-mailer/pkg/system"
)

// Sender is the part of the mailer the scheduled job depends on.
type Sender interface {
	Send() mail.SendResult
}

// SendJob returns the callback registered with the scheduler. The outcome of
// each firing is only logged and counted.
func SendJob(sender Sender, log *zap.SugaredLogger) func() {
	log = log.Named("job")
	return func() {
		log.Infow("Cron job triggered - sending good morning email...",
			"timestamp", system.FormatTimestamp(time.Now()))

		result := sender.Send()
		metrics.ScheduledRuns.WithLabelValues(metrics.Result(result.Success)).Inc()

		if !result.Success {
			log.Warnw("Scheduled email was not delivered", "error", result.Error)
			return
		}
		log.Infow("Scheduled email delivered", "messageID", result.MessageID)
	}
}
