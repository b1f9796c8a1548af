package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dailymailer_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"transport"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dailymailer_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"transport"})
	MailSendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dailymailer_mail_send_duration_seconds",
		Help:    "Time spent handing a message to the mail transport",
		Buckets: prometheus.DefBuckets,
	}, []string{"transport"})

	// Trigger metrics
	ScheduledRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dailymailer_scheduled_runs_total",
		Help: "Total number of scheduler firings grouped by send result",
	}, []string{"result"})
	ManualTriggers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dailymailer_manual_triggers_total",
		Help: "Total number of manual sends requested over HTTP grouped by send result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(MailSendDuration)
	prometheus.MustRegister(ScheduledRuns)
	prometheus.MustRegister(ManualTriggers)
}

// Result maps a send outcome onto the "result" label value.
func Result(success bool) string {
	if success {
		return ResultSuccess
	}
	return ResultFailure
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
