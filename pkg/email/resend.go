package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendEmailService implements EmailService using Resend
type ResendEmailService struct {
	client *resend.Client
	config *Config
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(config *Config) (*ResendEmailService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	client := resend.NewClient(config.APIKey)

	return &ResendEmailService{
		client: client,
		config: config,
	}, nil
}

// SendVerificationEmail sends an email verification link to the user
func (s *ResendEmailService) SendVerificationEmail(ctx context.Context, to, nickname, verificationURL string) error {
	htmlContent := VerificationEmailTemplate(nickname, verificationURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "Verify Your Email Address",
		Html:    htmlContent,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send verification email to %s: %v", to, err)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	log.Printf("Verification email sent successfully to %s (ID: %s)", to, sent.Id)
	return nil
}

// SendInvitationEmail sends an invitation link to a prospective user
func (s *ResendEmailService) SendInvitationEmail(ctx context.Context, to, invitationURL string) error {
	htmlContent := InvitationEmailTemplate(invitationURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "You Have Been Invited",
		Html:    htmlContent,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send invitation email to %s: %v", to, err)
		return fmt.Errorf("failed to send invitation email: %w", err)
	}

	log.Printf("Invitation email sent successfully to %s (ID: %s)", to, sent.Id)
	return nil
}
