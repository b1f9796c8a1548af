// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort        = "3000"
	DefaultEnvironment = "development"
	DefaultSender      = "from@example.com"
	DefaultRecipient   = "to@example.com"

	TransportSMTP   = "smtp"
	TransportResend = "resend"

	// ConfigPathEnv optionally points at a YAML file that seeds the configuration
	// before environment overrides are applied.
	ConfigPathEnv = "DAILY_MAILER_CONFIG"
)

type Server struct {
	Port string `yaml:"port"`
	// Environment is only reported in the startup log.
	Environment string `yaml:"environment"`
}

type Mail struct {
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	// Port is kept verbatim and only parsed when a message is delivered, so a
	// malformed value shows up as a failed send rather than a startup error.
	Port               string `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	ResendAPIKey       string `yaml:"resendAPIKey"`
	From               string `yaml:"from"`
	To                 string `yaml:"to"`
}

// Tracing controls OpenTelemetry spans around each delivery attempt.
type Tracing struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	SamplingRate float64 `yaml:"samplingRate"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	Mail    Mail    `yaml:"mail"`
	Tracing Tracing `yaml:"tracing"`
}

// Load builds the configuration from an optional YAML file followed by the
// process environment. If path is empty the DAILY_MAILER_CONFIG variable is
// consulted; when both are empty only the environment is used.
func Load(path string) (Config, error) {
	var config Config

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("trying to open daily-mailer config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(content, &config); err != nil {
			return config, fmt.Errorf("error unmarshaling YAML %s: %w", path, err)
		}
	}

	config.ApplyEnv(os.LookupEnv)
	config.Defaults()

	return config, nil
}

// ApplyEnv overlays environment variables onto c. Unset variables leave the
// existing value untouched.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	str("PORT", &c.Server.Port)
	str("NODE_ENV", &c.Server.Environment)

	str("EMAIL_TRANSPORT", &c.Mail.Transport)
	str("EMAIL_HOST", &c.Mail.Host)
	str("EMAIL_PORT", &c.Mail.Port)
	str("EMAIL_USER", &c.Mail.User)
	str("EMAIL_PASSWORD", &c.Mail.Password)
	str("EMAIL_FROM", &c.Mail.From)
	str("EMAIL_TO", &c.Mail.To)
	str("RESEND_API_KEY", &c.Mail.ResendAPIKey)

	if v, ok := lookup("EMAIL_INSECURE_SKIP_VERIFY"); ok {
		if b, err := cast.ToBoolE(strings.TrimSpace(v)); err == nil {
			c.Mail.InsecureSkipVerify = b
		}
	}

	if v, ok := lookup("DAILY_MAILER_TRACING_ENABLED"); ok {
		if b, err := cast.ToBoolE(strings.TrimSpace(v)); err == nil {
			c.Tracing.Enabled = b
		}
	}
	str("DAILY_MAILER_TRACING_EXPORTER", &c.Tracing.Exporter)
	if v, ok := lookup("DAILY_MAILER_TRACING_SAMPLING_RATE"); ok {
		if f, err := cast.ToFloat64E(strings.TrimSpace(v)); err == nil {
			c.Tracing.SamplingRate = f
		}
	}
}

// Defaults fills every unset field that has a sensible default. SMTP
// credentials have none and are left empty.
func (c *Config) Defaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.Environment == "" {
		c.Server.Environment = DefaultEnvironment
	}
	if c.Mail.Transport == "" {
		c.Mail.Transport = TransportSMTP
	}
	c.Mail.Transport = strings.ToLower(c.Mail.Transport)
	if c.Mail.From == "" {
		c.Mail.From = DefaultSender
	}
	if c.Mail.To == "" {
		c.Mail.To = DefaultRecipient
	}
}

// ListenPort returns the HTTP port as an integer.
func (c Config) ListenPort() (int, error) {
	port, err := cast.ToIntE(strings.TrimSpace(c.Server.Port))
	if err != nil {
		return 0, fmt.Errorf("invalid PORT %q: %w", c.Server.Port, err)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT %q: out of range", c.Server.Port)
	}
	return port, nil
}

// ListenAddress returns the address the HTTP server binds to.
func (c Config) ListenAddress() (string, error) {
	port, err := c.ListenPort()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(":%d", port), nil
}

// SMTPPort parses the configured SMTP port.
func (m Mail) SMTPPort() (int, error) {
	raw := strings.TrimSpace(m.Port)
	if raw == "" {
		return 0, fmt.Errorf("EMAIL_PORT is not set")
	}
	port, err := cast.ToIntE(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid EMAIL_PORT %q", m.Port)
	}
	return port, nil
}
