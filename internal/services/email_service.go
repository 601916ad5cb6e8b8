package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"resumebuilder/pkg/mailqueue"
)

// Publisher submits a rendered message for delivery. *mailqueue.Client
// satisfies this interface.
type Publisher interface {
	PublishEmail(msg mailqueue.EmailMessage) error
}

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Verify Your Email Address</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>Thank you for registering with Resume Builder! Click the button below to verify your email:</p>
  <p><a href="{{.Link}}" style="background: #4CAF50; color: white; padding: 10px 20px;">Verify Email Address</a></p>
  <p>Or copy this link: {{.Link}}</p>
  <p>This link expires in 24 hours.</p>
  <p>If you didn't create an account, please ignore this email.</p>
</body>
</html>`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Reset Your Password</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>We received a request to reset your password for your Resume Builder account.</p>
  <p><a href="{{.Link}}" style="background: #4CAF50; color: white; padding: 10px 20px;">Reset Password</a></p>
  <p>Or copy this link: {{.Link}}</p>
  <p>This link expires in 1 hour for security.</p>
  <p>If you didn't request a password reset, please ignore this email.</p>
</body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Welcome to Resume Builder!</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>Your email has been verified successfully! You can now create professional resumes, customize templates and themes, and manage multiple resumes.</p>
  <p><a href="{{.Link}}" style="background: #4CAF50; color: white; padding: 10px 20px;">Go to Dashboard</a></p>
</body>
</html>`))

// EmailService renders notification messages and submits them to the mail
// queue for delivery. Dispatch is fire-and-forget: it runs off the request
// path and failures are logged, never surfaced to the caller.
type EmailService struct {
	publisher   Publisher
	fromEmail   string
	frontendURL string
}

// NewEmailService creates a new EmailService.
func NewEmailService(publisher Publisher, fromEmail, frontendURL string) *EmailService {
	return &EmailService{
		publisher:   publisher,
		fromEmail:   fromEmail,
		frontendURL: frontendURL,
	}
}

// SendVerificationEmail dispatches the email-verification message.
func (s *EmailService) SendVerificationEmail(to, name, token string) {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)
	s.dispatch(to, "Verify Your Email - Resume Builder", verificationTmpl, name, link)
}

// SendPasswordResetEmail dispatches the password-reset message.
func (s *EmailService) SendPasswordResetEmail(to, name, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	s.dispatch(to, "Reset Your Password - Resume Builder", passwordResetTmpl, name, link)
}

// SendWelcomeEmail dispatches the post-verification welcome message.
func (s *EmailService) SendWelcomeEmail(to, name string) {
	s.dispatch(to, "Welcome to Resume Builder!", welcomeTmpl, name, s.frontendURL)
}

func (s *EmailService) dispatch(to, subject string, tmpl *template.Template, name, link string) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Name string
		Link string
	}{Name: name, Link: link})
	if err != nil {
		log.Printf("Failed to render email %q for %s: %v", subject, to, err)
		return
	}

	msg := mailqueue.EmailMessage{
		From:     s.fromEmail,
		To:       to,
		Subject:  subject,
		HTMLBody: buf.String(),
	}

	go func() {
		if err := s.publisher.PublishEmail(msg); err != nil {
			log.Printf("Warning: failed to publish email %q for %s: %v", subject, to, err)
		}
	}()
}
