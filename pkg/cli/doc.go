// Package cli implements the daily-mailer command line: the long-running
// serve command that schedules the daily email and exposes the HTTP
// endpoints, a one-shot send command and a version command.
package cli
