package email

import "context"

// EmailService defines the interface for sending emails
type EmailService interface {
	// SendVerificationEmail sends an email verification link to the user
	SendVerificationEmail(ctx context.Context, to, nickname, verificationURL string) error

	// SendInvitationEmail sends an invitation link to a prospective user
	SendInvitationEmail(ctx context.Context, to, invitationURL string) error
}

// Config holds email service configuration
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}
