package util

import (
	"fmt"
	"net/smtp"

	"github.com/edudesk/edudesk-backend/pkg/logger"
)

// SMTPMailer sends transactional email through a plain SMTP relay.
// When no credentials are configured it runs in dev mode and only logs
// what would have been sent.
type SMTPMailer struct {
	Host        string
	Port        string
	FromEmail   string
	Password    string
	FrontendURL string
}

func NewSMTPMailer(host, port, fromEmail, password, frontendURL string) *SMTPMailer {
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return &SMTPMailer{
		Host:        host,
		Port:        port,
		FromEmail:   fromEmail,
		Password:    password,
		FrontendURL: frontendURL,
	}
}

// SendPasswordResetEmail sends a password reset link for the given token
func (m *SMTPMailer) SendPasswordResetEmail(toEmail, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.FrontendURL, resetToken)

	if m.FromEmail == "" || m.Password == "" {
		logger.Info("[DEV MODE] Password reset email not sent, SMTP not configured", map[string]interface{}{
			"to":         toEmail,
			"reset_link": resetLink,
		})
		return nil
	}

	subject := "Password Reset Request - EduDesk"
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h2 style="color: #333;">Password Reset Request</h2>
		<p style="color: #666; line-height: 1.6;">
			You requested a password reset for your EduDesk account.<br>
			Click the button below to set a new password.
		</p>
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="display: inline-block; background-color: #3b82f6; color: white; padding: 15px 40px; text-decoration: none; border-radius: 8px; font-weight: bold;">
				Reset Password
			</a>
		</div>
		<p style="color: #999; font-size: 14px;">
			* This link will expire in 1 hour.
		</p>
		<p style="color: #999; font-size: 14px;">
			* If the button does not work, copy this link into your browser:
		</p>
		<p style="color: #666; font-size: 12px; word-break: break-all;">%s</p>
		<p style="color: #999; font-size: 14px; margin-top: 30px;">
			* If you didn't request this, please ignore this email.
		</p>
	</div>
</body>
</html>
`, resetLink, resetLink)

	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) send(toEmail, subject, body string) error {
	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.FromEmail, toEmail, subject, body,
	))

	auth := smtp.PlainAuth("", m.FromEmail, m.Password, m.Host)

	err := smtp.SendMail(
		m.Host+":"+m.Port,
		auth,
		m.FromEmail,
		[]string{toEmail},
		message,
	)
	if err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to": toEmail,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent successfully", map[string]interface{}{
		"to": toEmail,
	})
	return nil
}
