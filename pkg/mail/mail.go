package mail

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/telekom/daily-mailer/pkg/config"
)

// Transport hands a message to a mail provider and returns the identifier the
// message was accepted under.
type Transport interface {
	Deliver(msg Message) (messageID string, err error)
	Name() string
}

// NewTransport returns the transport selected by cfg.Transport. Credentials
// are not checked here; a missing or wrong value fails the first delivery.
func NewTransport(cfg config.Mail, log *zap.SugaredLogger) (Transport, error) {
	switch cfg.Transport {
	case "", config.TransportSMTP:
		return NewSMTPTransport(cfg, log), nil
	case config.TransportResend:
		return NewResendTransport(cfg.ResendAPIKey, log), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}

type smtpTransport struct {
	cfg config.Mail
	log *zap.SugaredLogger
}

// NewSMTPTransport creates a transport that opens a fresh SMTP connection for
// every delivery.
func NewSMTPTransport(cfg config.Mail, log *zap.SugaredLogger) Transport {
	log = log.Named("smtp")
	log.Infow("Initializing SMTP transport", "host", cfg.Host, "port", cfg.Port, "user", cfg.User)
	if cfg.InsecureSkipVerify {
		log.Warn("InsecureSkipVerify is enabled for mail TLS connection")
	}
	return &smtpTransport{cfg: cfg, log: log}
}

func (s *smtpTransport) Name() string {
	return config.TransportSMTP
}

func (s *smtpTransport) Deliver(msg Message) (string, error) {
	port, err := s.cfg.SMTPPort()
	if err != nil {
		return "", err
	}

	d := gomail.NewDialer(s.cfg.Host, port, s.cfg.User, s.cfg.Password)
	if s.cfg.InsecureSkipVerify {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via EMAIL_INSECURE_SKIP_VERIFY
	}

	messageID := newMessageID(msg.From)
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/plain", msg.TextBody)
	m.AddAlternative("text/html", msg.HTMLBody)

	s.log.Debugw("Dialing SMTP server", "host", s.cfg.Host, "port", port, "to", msg.To)
	if err := d.DialAndSend(m); err != nil {
		return "", fmt.Errorf("sending mail via %s:%d: %w", s.cfg.Host, port, err)
	}
	return messageID, nil
}

// newMessageID builds an RFC 5322 Message-ID scoped to the sender's domain.
func newMessageID(from string) string {
	domain := "daily-mailer.local"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.Trim(from[at+1:], "<> ")
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
