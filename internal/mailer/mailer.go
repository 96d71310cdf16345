package mailer

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/interfaces"
)

var (
	_ interfaces.ConsumerHandler = (*Mailer)(nil)
	_ interfaces.Mailer          = (*Mailer)(nil)
)

// Mailer sends auth notifications over SMTP with STARTTLS. It also
// implements interfaces.ConsumerHandler so it can be driven straight
// from the mail topic.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	fromName string
}

func New(host, port, user, password, from, fromName string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

func (m *Mailer) HandleMessage(key, value []byte) error {
	switch string(key) {
	case dto.EventVerifyEmail:
		var ev dto.VerifyEmailEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("decode verify event: %w", err)
		}
		return m.SendOTPEmail(ev.Email, ev.Code)
	case dto.EventResetPassword:
		var ev dto.ResetPasswordEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("decode reset event: %w", err)
		}
		return m.SendResetEmail(ev.Email, ev.ResetLink)
	default:
		log.Printf("[MAIL] unknown event key %q - skipped", key)
		return nil
	}
}

func (m *Mailer) SendOTPEmail(to, code string) error {
	body := fmt.Sprintf(
		"<p>Your verification code is:</p><h2>%s</h2><p>It expires in 10 minutes.</p>",
		code,
	)
	return m.send(to, "Your verification code", body)
}

func (m *Mailer) SendResetEmail(to, link string) error {
	body := fmt.Sprintf(
		`<p>To reset your password, open the link below:</p><p><a href="%s">%s</a></p><p>The link expires in 15 minutes.</p>`,
		link, link,
	)
	return m.send(to, "Reset your password", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	fromHeader := fmt.Sprintf("%s <%s>", m.fromName, m.from)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s:%s", to, m.host, m.port)

	if err := m.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (m *Mailer) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// Deadline covers the whole SMTP conversation, not just the dial.
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}

	if m.user != "" {
		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
