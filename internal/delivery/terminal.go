package delivery

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

// Notifier is told about submissions that only reached the log.
type Notifier interface {
	Recipient() string
	Notify(ctx context.Context, sub intake.Submission) error
}

// LogTerminal accepts a submission by writing it to the log, which the
// hosting platform retains. When a notifier is configured it also sends a
// notification; failures there are logged only.
type LogTerminal struct {
	notifier Notifier
	logger   *logging.Logger
}

// NewLogTerminal builds the log-only terminal step. notifier may be nil.
func NewLogTerminal(notifier Notifier, logger *logging.Logger) *LogTerminal {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogTerminal{notifier: notifier, logger: logger}
}

// LogEvent returns the marker a submission is logged under, e.g.
// BETA_SIGNUP_RECEIVED.
func LogEvent(form intake.Form) string {
	return strings.ToUpper(strings.ReplaceAll(string(form), "-", "_")) + "_RECEIVED"
}

func (t *LogTerminal) Accept(ctx context.Context, sub intake.Submission) {
	record, err := json.Marshal(sub)
	if err != nil {
		t.logger.Error("failed to encode submission for log", "form", sub.Form, "error", err)
		record = nil
	}

	if t.notifier != nil && t.notifier.Recipient() != "" {
		t.logger.Info(strings.TrimSuffix(LogEvent(sub.Form), "_RECEIVED"),
			"form", sub.Form,
			"notify", t.notifier.Recipient(),
			"submission", json.RawMessage(record),
		)
		if err := t.notifier.Notify(ctx, sub); err != nil {
			t.logger.Error("submission notification failed", "form", sub.Form, "error", err)
		}
	}

	t.logger.Info(LogEvent(sub.Form),
		"form", sub.Form,
		"submission", json.RawMessage(record),
	)
}

var _ Terminal = (*LogTerminal)(nil)
