package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTP delivers credential mail over an authenticated SMTP relay. It
// satisfies the registry's CredentialMailer port structurally so the
// platform layer stays free of context imports.
type SMTP struct {
	Host   string
	Port   string
	User   string
	Pass   string
	From   string
	Logger *slog.Logger
}

func (m SMTP) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	from := m.From
	if from == "" {
		from = m.User
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		m.logger().Error("credential mail delivery failed",
			"event", "mailer_send_failed",
			"module", "internal/platform/mailer",
			"layer", "platform",
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (m SMTP) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
