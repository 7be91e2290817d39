package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

// Send delivers one message over a fresh SMTP session. Each call dials,
// authenticates, submits and quits; alert volume is low enough that
// connection reuse is not worth the bookkeeping.
func (m *implMailer) Send(ctx context.Context, msg Message) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	client, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(m.buildMessage(msg)); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	if err := client.Quit(); err != nil {
		return err
	}

	m.l.Debugf(ctx, "pkg.mailer.Send: delivered to %s", msg.To)
	return nil
}

// buildMessage assembles headers and a multipart/alternative body when both
// text and HTML parts are present.
func (m *implMailer) buildMessage(msg Message) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", m.cfg.From),
		fmt.Sprintf("To: %s", msg.To),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", msg.Subject)),
		fmt.Sprintf("Date: %s", time.Now().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
	}

	var body string
	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		const boundary = "alert-boundary-2189"
		headers = append(headers, fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", boundary))
		body = strings.Join([]string{
			"--" + boundary,
			"Content-Type: text/plain; charset=\"UTF-8\"",
			"",
			msg.TextBody,
			"--" + boundary,
			"Content-Type: text/html; charset=\"UTF-8\"",
			"",
			msg.HTMLBody,
			"--" + boundary + "--",
		}, "\r\n")
	case msg.HTMLBody != "":
		headers = append(headers, "Content-Type: text/html; charset=\"UTF-8\"")
		body = msg.HTMLBody
	default:
		headers = append(headers, "Content-Type: text/plain; charset=\"UTF-8\"")
		body = msg.TextBody
	}

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

func (m *implMailer) connect(ctx context.Context) (*smtp.Client, error) {
	address := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	dialer := &net.Dialer{Timeout: m.cfg.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if m.cfg.Security == SecurityTLS {
		tlsConfig := &tls.Config{ServerName: m.cfg.Host}
		conn, err = tls.DialWithDialer(dialer, "tcp", address, tlsConfig)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", address)
	}
	if err != nil {
		return nil, err
	}
	if m.cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(m.cfg.Timeout))
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if m.cfg.Security == SecurityStartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			_ = client.Close()
			return nil, fmt.Errorf("smtp server does not support STARTTLS")
		}
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			_ = client.Close()
			return nil, classifyAuthError(err)
		}
	}

	return client, nil
}

// classifyAuthError maps the provider's "application-specific password
// required" rejection (Gmail 534 5.7.9) to its sentinel.
func classifyAuthError(err error) error {
	var proto *textproto.Error
	if errors.As(err, &proto) && proto.Code == 534 {
		return fmt.Errorf("%w: %v", ErrAppPasswordRequired, err)
	}
	if strings.Contains(err.Error(), "application-specific password") {
		return fmt.Errorf("%w: %v", ErrAppPasswordRequired, err)
	}
	return err
}
