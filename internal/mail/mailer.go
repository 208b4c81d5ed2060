package mail

import (
	"fmt"
	"net/smtp"

	"ngo-portal/config"
)

// Send delivers a plain-text email through the configured SMTP relay.
func Send(to, subject, body string) error {
	from := config.SMTP_FROM
	password := config.SMTP_PASSWORD
	host := config.SMTP_HOST
	port := config.SMTP_PORT

	if from == "" || host == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", config.APP_URL, token)
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)
	return Send(to, "Verify Your Account", body)
}

func SendPasswordResetEmail(to string, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.APP_URL, token)
	body := fmt.Sprintf("Use the following link to reset your password. It expires in one hour.\n\n%s", link)
	return Send(to, "Reset Your Password", body)
}
