// Package api implements the daily-mailer HTTP API server (Gin-based): health
// and status endpoints, the manual send trigger, and Prometheus metrics.
package api
