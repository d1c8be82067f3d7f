package mail

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// SMTPConfig configures SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

// SMTPSender delivers mail over SMTP with optional PLAIN auth.
type SMTPSender struct {
	config SMTPConfig
	auth   smtp.Auth
}

// NewSMTPSender creates a sender. Auth is used only when both user and
// password are set.
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if config.User != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.User, config.Password, config.Host)
	}
	return &SMTPSender{config: config, auth: auth}
}

// Send delivers msg. The receipt id is the generated Message-ID.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if len(msg.To) == 0 {
		return Receipt{}, fmt.Errorf("no recipients")
	}
	addr := net.JoinHostPort(s.config.Host, s.config.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Receipt{}, fmt.Errorf("dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		_ = conn.Close()
		return Receipt{}, fmt.Errorf("smtp handshake: %w", err)
	}
	defer func() { _ = c.Close() }()

	if ok, _ := c.Extension("STARTTLS"); ok && s.auth != nil {
		if err := c.StartTLS(nil); err != nil {
			return Receipt{}, fmt.Errorf("starttls: %w", err)
		}
	}
	if s.auth != nil {
		if err := c.Auth(s.auth); err != nil {
			return Receipt{}, fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(sanitizeHeader(msg.From)); err != nil {
		return Receipt{}, fmt.Errorf("mail from: %w", err)
	}
	for _, to := range msg.To {
		if err := c.Rcpt(sanitizeHeader(to)); err != nil {
			return Receipt{}, fmt.Errorf("rcpt to: %w", err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return Receipt{}, fmt.Errorf("data: %w", err)
	}
	id := uuid.NewString() + "@" + s.config.Host
	if _, err := w.Write(buildMIME(msg, id)); err != nil {
		return Receipt{}, fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return Receipt{}, fmt.Errorf("close: %w", err)
	}
	if err := c.Quit(); err != nil {
		return Receipt{}, fmt.Errorf("quit: %w", err)
	}
	return Receipt{ID: id}, nil
}

func buildMIME(msg Message, id string) []byte {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = sanitizeHeader(addr)
	}

	lines := []string{
		"From: " + sanitizeHeader(msg.From),
		"To: " + strings.Join(to, ", "),
		"Subject: " + mime.QEncoding.Encode("utf-8", sanitizeHeader(msg.Subject)),
		"Message-ID: <" + id + ">",
		"MIME-Version: 1.0",
	}
	if msg.ReplyTo != "" {
		lines = append(lines, "Reply-To: "+sanitizeHeader(msg.ReplyTo))
	}

	body := msg.HTML
	contentType := "text/html; charset=UTF-8"
	if body == "" {
		body = msg.Text
		contentType = "text/plain; charset=UTF-8"
	}
	lines = append(lines, "Content-Type: "+contentType, "", body)
	return []byte(strings.Join(lines, "\r\n"))
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}
