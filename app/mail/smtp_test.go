package mail

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts one session and records the DATA payload.
func fakeSMTP(t *testing.T) (host, port string, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		reply := func(s string) { conn.Write([]byte(s + "\r\n")) }

		reply("220 fake ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 fake")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				reply("250 OK")
			case cmd == "DATA":
				reply("354 go ahead")
				var b strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					b.WriteString(l)
				}
				out <- b.String()
				reply("250 queued")
			case cmd == "QUIT":
				reply("221 bye")
				return
			default:
				reply("502 unsupported")
			}
		}
	}()

	h, p, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return h, p, out
}

func TestSMTPSenderSend(t *testing.T) {
	host, port, data := fakeSMTP(t)
	sender := NewSMTPSender(SMTPConfig{Host: host, Port: port})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receipt, err := sender.Send(ctx, testMessage())
	require.NoError(t, err)
	assert.Contains(t, receipt.ID, "@"+host)

	select {
	case payload := <-data:
		assert.Contains(t, payload, "Subject: Contact form: Ada")
		assert.Contains(t, payload, "Reply-To: ada@example.com")
		assert.Contains(t, payload, "<p>Hello</p>")
	case <-time.After(5 * time.Second):
		t.Fatal("no DATA received")
	}
}

func TestSMTPSenderNoRecipients(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Host: "localhost", Port: "25"}).Send(context.Background(), Message{})
	assert.Error(t, err)
}

func TestBuildMIME(t *testing.T) {
	msg := Message{
		From:    "site@example.com",
		To:      []string{"a@example.com", "b@example.com\r\nBcc: evil@example.com"},
		Subject: "Hi\r\nX-Injected: yes",
		Text:    "plain body",
	}
	raw := string(buildMIME(msg, "id@host"))

	assert.Contains(t, raw, "To: a@example.com, b@example.comBcc: evil@example.com\r\n")
	assert.Contains(t, raw, "Subject: HiX-Injected: yes\r\n")
	assert.NotContains(t, raw, "\r\nX-Injected")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, raw, "Message-ID: <id@host>")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nplain body"))
}

func TestBuildMIMEEncodesNonASCIISubject(t *testing.T) {
	raw := string(buildMIME(Message{
		From:    "site@example.com",
		To:      []string{"a@example.com"},
		Subject: "Contact form: Zoë",
		Text:    "plain body",
	}, "id@host"))

	assert.Contains(t, raw, "Subject: =?utf-8?q?Contact_form:_Zo=C3=AB?=\r\n")
}
