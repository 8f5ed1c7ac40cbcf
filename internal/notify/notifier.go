package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

// SubmissionNotifier emails the team a summary of a submission that no sink
// accepted.
type SubmissionNotifier struct {
	sender  EmailSender
	to      string
	subject string
	logger  *logging.Logger
}

// NewSubmissionNotifier returns nil when no recipient is configured.
func NewSubmissionNotifier(sender EmailSender, to, subject string, logger *logging.Logger) *SubmissionNotifier {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	if subject == "" {
		subject = "New QuickSay submission"
	}
	return &SubmissionNotifier{sender: sender, to: to, subject: subject, logger: logger}
}

// Recipient returns the configured notification address.
func (n *SubmissionNotifier) Recipient() string {
	if n == nil {
		return ""
	}
	return n.to
}

// Notify sends the summary email. A failed HTML render still sends the
// plain text version.
func (n *SubmissionNotifier) Notify(ctx context.Context, sub intake.Submission) error {
	if n == nil {
		return nil
	}
	note := Notification{
		Form:    sub.Form,
		To:      n.to,
		ReplyTo: replyAddress(sub),
		Subject: fmt.Sprintf("%s (%s)", n.subject, sub.Form),
		Text:    FormatSubmission(sub),
	}
	html, err := RenderSubmissionHTML(sub)
	if err != nil {
		n.logger.Warn("notification html render failed", "form", sub.Form, "error", err)
	}
	note.HTML = html

	if err := n.sender.Send(ctx, note); err != nil {
		return fmt.Errorf("notify: submission email: %w", err)
	}
	return nil
}

// replyAddress is the submitter's email when it is a usable address.
func replyAddress(sub intake.Submission) string {
	email, _ := sub.Value("email").(string)
	email = strings.TrimSpace(email)
	if !intake.ValidEmail(email) {
		return ""
	}
	return email
}
