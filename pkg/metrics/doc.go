// Package metrics defines Prometheus metrics for daily-mailer, covering mail
// delivery, scheduled runs and manual triggers.
package metrics
