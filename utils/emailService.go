package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML email through SMTP
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Printf("Email not configured, skipping send to %v (%s)", to, subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #1a1a2e;">%s</h2>
		<div style="color: #444; line-height: 1.6;">%s</div>
		<hr style="border: none; border-top: 1px solid #eee; margin: 24px 0;">
		<p style="color: #999; font-size: 12px;">This is an automated message, please do not reply.</p>
	</div>`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your account has been created. You can now sign in and start learning.</p>`, name)
	return SendEmail([]string{email}, "Welcome!", getEmailTemplate("Welcome!", body))
}

// SendPasswordResetEmail delivers a single-use reset code
func SendPasswordResetEmail(email, name, code string) error {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Use the code below to reset your password. It expires in 30 minutes.</p><p><b>%s</b></p><p>If you did not request this, you can ignore this email.</p>`, name, code)
	return SendEmail([]string{email}, "Password Reset", getEmailTemplate("Password Reset", body))
}

// SendCoursePublishedEmail notifies a teacher that a scheduled course went live
func SendCoursePublishedEmail(email, name, courseTitle string) error {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your course <b>%s</b> is now published and visible to students.</p>`, name, courseTitle)
	return SendEmail([]string{email}, "Course Published", getEmailTemplate("Course Published", body))
}
