package service

import (
	"fmt"
	"net/smtp"

	"github.com/snapcal/backend/config"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

func NewEmailService(cfg *config.Config) IEmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
		fromName:     cfg.EmailFromName,
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		fmt.Printf("SMTP not configured, logging email:\n")
		fmt.Printf("To: %s\n", to)
		fmt.Printf("Subject: %s\n", subject)
		fmt.Printf("Body:\n%s\n", body)
		fmt.Printf("--- End Email ---\n")
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) SendVerificationCode(to, code string) error {
	subject := "Your SnapCal Verification Code"
	body := s.buildVerificationCodeBody(code)
	return s.SendEmail(to, subject, body)
}

func (s *EmailService) SendWelcomeEmail(to string, firstName *string) error {
	subject := "Welcome to SnapCal!"
	body := s.buildWelcomeBody(firstName)
	return s.SendEmail(to, subject, body)
}

func (s *EmailService) buildVerificationCodeBody(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Your SnapCal Verification Code</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">SnapCal</h1>
		<p style="margin: 10px 0 0 0; font-size: 16px;">Track every meal, effortlessly</p>
	</div>
	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #4CAF50;">Verify your email</h2>
		<p>Use this code to finish setting up your account:</p>
		<div style="background-color: white; padding: 20px; text-align: center; border-radius: 5px; margin: 20px 0;">
			<span style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</span>
		</div>
		<p>The code expires in 15 minutes. If you did not request it, you can ignore this email.</p>
	</div>
</body>
</html>`, code)
}

func (s *EmailService) buildWelcomeBody(firstName *string) string {
	name := "there"
	if firstName != nil && *firstName != "" {
		name = *firstName
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Welcome to SnapCal!</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">SnapCal</h1>
		<p style="margin: 10px 0 0 0; font-size: 16px;">Track every meal, effortlessly</p>
	</div>
	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #4CAF50;">Welcome, %s!</h2>
		<p>Your account is ready. Everything you logged as a guest is still here.</p>
		<p>Happy tracking!</p>
	</div>
</body>
</html>`, name)
}
