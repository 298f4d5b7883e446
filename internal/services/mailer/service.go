// Package mailer delivers transactional email through SendGrid.
// Without an API key it runs in dev mode and only logs, so local
// setups work without credentials.
package mailer

import (
	"fmt"
	"log"

	"splitr/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Service interface {
	SendPasswordReset(toEmail, toName, resetURL string) error
}

type service struct {
	apiKey     string
	sender     string
	senderName string
}

func NewService() Service {
	return &service{
		apiKey:     config.GetEnv("SENDGRID_API_KEY", ""),
		sender:     config.GetEnv("EMAIL_SENDER", "noreply@splitr.app"),
		senderName: config.GetEnv("EMAIL_SENDER_NAME", "Splitr"),
	}
}

func (s *service) SendPasswordReset(toEmail, toName, resetURL string) error {
	if s.apiKey == "" {
		log.Printf("mailer dev mode: password reset for %s -> %s", toEmail, resetURL)
		return nil
	}

	from := mail.NewEmail(s.senderName, s.sender)
	to := mail.NewEmail(toName, toEmail)
	subject := "Reset your Splitr password"
	plain := fmt.Sprintf("Hi %s,\n\nReset your password here: %s\n\nThe link expires in 10 minutes. If you did not request this, ignore this email.", toName, resetURL)
	html := fmt.Sprintf(`<p>Hi <strong>%s</strong>,</p><p><a href="%s">Reset your password</a></p><p>The link expires in 10 minutes. If you did not request this, ignore this email.</p>`, toName, resetURL)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("failed to send reset email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected reset email: status %d", resp.StatusCode)
	}
	return nil
}
