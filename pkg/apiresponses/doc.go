// Package apiresponses defines the JSON bodies returned by the daily-mailer
// HTTP API and helpers that write them.
package apiresponses
