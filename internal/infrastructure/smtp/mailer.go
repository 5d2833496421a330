package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/JHSeo-git/close-mountain-api/internal/config"
	"github.com/JHSeo-git/close-mountain-api/internal/domain"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

// CodeSender dispatches verification codes over email. It satisfies the
// verification engine's sender contract for the "email" provider.
type CodeSender struct {
	mailer Mailer
}

func NewCodeSender(m Mailer) *CodeSender {
	return &CodeSender{mailer: m}
}

func (s *CodeSender) Send(_ context.Context, target, code string, useType domain.VerificationUseType) error {
	return s.mailer.SendEmail(target, subjectFor(useType), "Your verification code is: "+code)
}

func subjectFor(useType domain.VerificationUseType) string {
	switch useType {
	case domain.UseTypeSignup:
		return "Confirm your signup"
	case domain.UseTypeResetPassword:
		return "Reset your password"
	case domain.UseTypeTwoFactor:
		return "Your two-factor code"
	default:
		return "Your verification code"
	}
}
