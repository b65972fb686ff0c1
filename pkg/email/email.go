package email

import (
	"fmt"
	"net/smtp"

	"reviews-api/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers confirmation codes to users out-of-band
type Sender interface {
	SendConfirmationCode(to, username, code string) error
}

type smtpSender struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSender(config utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		config: config,
		log:    log.With(zap.String("component", "email")),
	}
}

func (s *smtpSender) SendConfirmationCode(to, username, code string) error {
	// No SMTP host configured: log the code instead of sending (development mode)
	if s.config.Host == "" {
		s.log.Info("Confirmation code issued (SMTP not configured)",
			zap.String("email", to),
			zap.String("username", username),
			zap.String("code", code),
		)
		return nil
	}

	subject := "Your confirmation code"
	body := fmt.Sprintf(`Hello %s!

Your confirmation code is: %s

Exchange it for an access token at /api/v1/auth/token.

If you did not sign up, ignore this email.
`, username, code)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", s.config.From, to, subject, body)

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(message)); err != nil {
		s.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.String("email", to),
		)
		return fmt.Errorf("send confirmation email to %s: %w", to, err)
	}

	return nil
}
