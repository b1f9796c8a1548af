// Package config handles daily-mailer configuration loading from an optional
// YAML file and the process environment.
package config
