package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService delivers the transactional mails of the auth flows.
type EmailService interface {
	SendOTP(to, name, otp string, validFor time.Duration) error
	SendWelcome(to, name, employeeID, tempPassword, loginURL string) error
	SendPasswordReset(to, resetLink, expiresAt string) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	sendMail  sendMailFunc
	backoff   time.Duration
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		sendMail:  smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

// outgoing is one rendered-on-demand mail.
type outgoing struct {
	to       string
	subject  string
	template string
	data     any
}

func (s *emailServiceImpl) SendOTP(to, name, otp string, validFor time.Duration) error {
	return s.send(outgoing{
		to:       to,
		subject:  "Your login OTP",
		template: "otp.html",
		data: struct {
			Name     string
			OTP      string
			ValidFor int
		}{name, otp, int(validFor.Minutes())},
	})
}

func (s *emailServiceImpl) SendWelcome(to, name, employeeID, tempPassword, loginURL string) error {
	return s.send(outgoing{
		to:       to,
		subject:  "Welcome to NMEP Payroll",
		template: "welcome.html",
		data: struct {
			Name         string
			EmployeeID   string
			Email        string
			TempPassword string
			LoginURL     string
		}{name, employeeID, to, tempPassword, loginURL},
	})
}

func (s *emailServiceImpl) SendPasswordReset(to, resetLink, expiresAt string) error {
	return s.send(outgoing{
		to:       to,
		subject:  "Password Reset Request",
		template: "password_reset.html",
		data: struct {
			ResetLink string
			ExpiresAt string
		}{resetLink, expiresAt},
	})
}

// send renders m and hands it to the SMTP relay, retrying with exponential
// backoff. Without a configured host the mail is logged and dropped.
func (s *emailServiceImpl) send(m outgoing) error {
	msg, err := s.compose(m)
	if err != nil {
		return err
	}

	if s.cfg.Host == "" {
		slog.Warn("SMTP host not set, mail dropped", "to", m.to, "subject", m.subject)
		return nil
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if lastErr = s.sendMail(addr, auth, s.cfg.From, []string{m.to}, msg); lastErr == nil {
			slog.Info("Mail delivered", "to", m.to, "subject", m.subject, "attempt", attempt)
			return nil
		}
		slog.Error("Mail delivery failed", "to", m.to, "subject", m.subject, "attempt", attempt, "error", lastErr)
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}
	return fmt.Errorf("send mail after %d attempts: %w", maxRetries, lastErr)
}

func (s *emailServiceImpl) compose(m outgoing) ([]byte, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, m.template, m.data); err != nil {
		return nil, fmt.Errorf("render %s: %w", m.template, err)
	}

	from := mail.Address{Name: s.cfg.FromName, Address: s.cfg.From}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", m.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
