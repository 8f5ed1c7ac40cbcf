package notify

import (
	"context"

	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

const defaultFromName = "QuickSay"

// Notification is one email to the team about a submission.
type Notification struct {
	Form    intake.Form
	To      string
	// ReplyTo is the submitter's address so a reply reaches them directly.
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// EmailSender delivers notifications through one provider.
type EmailSender interface {
	Send(ctx context.Context, n Notification) error
}

// StubEmailSender logs notifications instead of sending them. It is the
// default when no provider is configured.
type StubEmailSender struct {
	logger *logging.Logger
}

func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(ctx context.Context, n Notification) error {
	s.logger.Info("notification email not sent (stub provider)",
		"form", n.Form,
		"to", n.To,
		"reply_to", n.ReplyTo,
		"subject", n.Subject,
	)
	return nil
}

var _ EmailSender = (*StubEmailSender)(nil)
