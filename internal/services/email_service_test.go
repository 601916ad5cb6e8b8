package services_test

import (
	"errors"
	"testing"
	"time"

	"resumebuilder/internal/services"
	"resumebuilder/pkg/mailqueue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// channelPublisher hands each published message to the test goroutine.
type channelPublisher struct {
	messages chan mailqueue.EmailMessage
	err      error
}

func newChannelPublisher() *channelPublisher {
	return &channelPublisher{messages: make(chan mailqueue.EmailMessage, 1)}
}

func (p *channelPublisher) PublishEmail(msg mailqueue.EmailMessage) error {
	p.messages <- msg
	return p.err
}

func (p *channelPublisher) receive(t *testing.T) mailqueue.EmailMessage {
	t.Helper()
	select {
	case msg := <-p.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no email message published")
		return mailqueue.EmailMessage{}
	}
}

func TestEmailService_SendVerificationEmail(t *testing.T) {
	publisher := newChannelPublisher()
	emailService := services.NewEmailService(publisher, "no-reply@resumebuilder.local", "http://localhost:5173")

	emailService.SendVerificationEmail("alice@example.com", "Alice", "verify-token-123")

	msg := publisher.receive(t)
	assert.Equal(t, "no-reply@resumebuilder.local", msg.From)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Verify")
	assert.Contains(t, msg.HTMLBody, "Alice")
	assert.Contains(t, msg.HTMLBody, "http://localhost:5173/verify-email?token=verify-token-123")
}

func TestEmailService_SendPasswordResetEmail(t *testing.T) {
	publisher := newChannelPublisher()
	emailService := services.NewEmailService(publisher, "no-reply@resumebuilder.local", "http://localhost:5173")

	emailService.SendPasswordResetEmail("alice@example.com", "Alice", "reset-token-456")

	msg := publisher.receive(t)
	assert.Contains(t, msg.Subject, "Reset")
	assert.Contains(t, msg.HTMLBody, "http://localhost:5173/reset-password?token=reset-token-456")
}

func TestEmailService_SendWelcomeEmail(t *testing.T) {
	publisher := newChannelPublisher()
	emailService := services.NewEmailService(publisher, "no-reply@resumebuilder.local", "http://localhost:5173")

	emailService.SendWelcomeEmail("alice@example.com", "Alice")

	msg := publisher.receive(t)
	assert.Contains(t, msg.Subject, "Welcome")
	assert.Contains(t, msg.HTMLBody, "http://localhost:5173")
}

func TestEmailService_PublishFailureIsSwallowed(t *testing.T) {
	publisher := newChannelPublisher()
	publisher.err = errors.New("broker unavailable")
	emailService := services.NewEmailService(publisher, "no-reply@resumebuilder.local", "http://localhost:5173")

	// A failed publish is logged, never surfaced to the caller.
	require.NotPanics(t, func() {
		emailService.SendWelcomeEmail("alice@example.com", "Alice")
		publisher.receive(t)
	})
}
