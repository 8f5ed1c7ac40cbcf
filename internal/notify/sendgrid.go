package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/quicksay/quicksay-web/pkg/logging"
)

// SendGridSender sends notifications through the SendGrid v3 mail API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig configures a SendGridSender.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	// BaseURL replaces the SendGrid API host, e.g. for a local mock.
	BaseURL string
}

// NewSendGridSender returns nil when no API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = defaultFromName
	}
	client := sendgrid.NewSendClient(cfg.APIKey)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		client.BaseURL = base + "/v3/mail/send"
	}
	return &SendGridSender{client: client, fromEmail: cfg.FromEmail, fromName: cfg.FromName, logger: logger}
}

// Send tags the message with the form as a SendGrid category and sets
// Reply-To to the submitter when known.
func (s *SendGridSender) Send(ctx context.Context, n Notification) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.fromName, s.fromEmail))
	m.Subject = n.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", n.To))
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/plain", n.Text))
	if n.HTML != "" {
		m.AddContent(mail.NewContent("text/html", n.HTML))
	}
	if n.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", n.ReplyTo))
	}
	if n.Form != "" {
		m.AddCategories(string(n.Form))
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("notify: sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("sendgrid rejected notification", "form", n.Form, "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("notify: sendgrid returned status %d", resp.StatusCode)
	}

	s.logger.Info("notification sent", "provider", "sendgrid", "form", n.Form, "status", resp.StatusCode)
	return nil
}

var _ EmailSender = (*SendGridSender)(nil)
