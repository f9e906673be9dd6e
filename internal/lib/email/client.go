// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"fmt"

	"github.com/deppfellow/mobile-api/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const (
	senderName    = "Mobile API"
	senderAddress = "onboarding@resend.dev"
)

// Sender is the part of the Resend API the client uses.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and hands the result to Resend.
type Client struct {
	sender Sender
	logger *zerolog.Logger
}

// NewClient creates a Client backed by the Resend API key from cfg.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return NewClientWithSender(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, logger)
}

// NewClientWithSender creates a Client that delivers through sender.
func NewClientWithSender(sender Sender, logger *zerolog.Logger) *Client {
	return &Client{
		sender: sender,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data any) error {
	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", senderName, senderAddress),
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.sender.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if sent != nil {
		c.logger.Debug().
			Str("email_id", sent.Id).
			Str("template", string(templateName)).
			Msg("email sent")
	}

	return nil
}
