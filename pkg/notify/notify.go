// Package notify delivers e-mail notifications to clients.
package notify

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/amirasaad/bankoffice/pkg/config"
	"gopkg.in/mail.v2"
)

// Notifier sends an HTML e-mail.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// New returns an SMTPNotifier when mail is enabled, a LogNotifier otherwise.
func New(cfg *config.Mail, logger *slog.Logger) Notifier {
	if cfg == nil || !cfg.Enabled {
		return NewLogNotifier(logger)
	}
	return NewSMTPNotifier(cfg)
}

// SMTPNotifier sends mail through an SMTP server using STARTTLS.
type SMTPNotifier struct {
	from   string
	dialer *mail.Dialer
}

// NewSMTPNotifier creates a notifier for the configured SMTP server.
func NewSMTPNotifier(cfg *config.Mail) *SMTPNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return &SMTPNotifier{from: from, dialer: d}
}

// Message builds the MIME message SendEmail would deliver.
func (n *SMTPNotifier) Message(to, subject, htmlBody string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

// SendEmail implements Notifier.
func (n *SMTPNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.dialer.DialAndSend(n.Message(to, subject, htmlBody))
}

// LogNotifier only logs the message. It is used when mail is disabled.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// SendEmail implements Notifier.
func (n *LogNotifier) SendEmail(_ context.Context, to, subject, htmlBody string) error {
	n.logger.Info("E-mail not sent, mail delivery disabled",
		"to", to, "subject", subject, "bytes", len(htmlBody))
	return nil
}

// WelcomeSubject is the subject of the registration e-mail.
const WelcomeSubject = "Welcome message"

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>Welcome, {{.Name}}!</h2>
<p>Your client registration has been received and is pending activation.</p>
<p>Your account number is <strong>{{.AccountNumber}}</strong>.</p>
<p>Thank you for choosing us.</p>
</body>
</html>
`))

// WelcomeEmail renders the registration e-mail. Callers must never pass the
// password or its hash.
func WelcomeEmail(name, accountNumber string) (subject, body string, err error) {
	var buf bytes.Buffer
	err = welcomeTmpl.Execute(&buf, struct {
		Name          string
		AccountNumber string
	}{name, accountNumber})
	if err != nil {
		return "", "", err
	}
	return WelcomeSubject, buf.String(), nil
}
