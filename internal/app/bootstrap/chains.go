package bootstrap

import (
	"context"
	"fmt"

	appconfig "github.com/quicksay/quicksay-web/internal/config"
	"github.com/quicksay/quicksay-web/internal/delivery"
	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/internal/notify"
	"github.com/quicksay/quicksay-web/internal/observability/metrics"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

// BuildSignupChain wires webhook, then Google Sheets, then the log terminal.
func BuildSignupChain(ctx context.Context, cfg *appconfig.Config, notifier *notify.SubmissionNotifier, logger *logging.Logger, m *metrics.IntakeMetrics) (*delivery.Chain, error) {
	webhook := delivery.NewWebhookSink(delivery.WebhookConfig{
		Name:            "n8n",
		URL:             cfg.SignupWebhookURL,
		Timeout:         cfg.SinkTimeout,
		RequireAccepted: true,
	}, logger)

	sheets, err := delivery.NewSheetsSink(ctx, delivery.SheetsConfig{
		APIKey:        cfg.SheetsAPIKey,
		SpreadsheetID: cfg.SheetsID,
		Range:         cfg.SheetsRange,
		Timeout:       cfg.SinkTimeout,
		Endpoint:      cfg.SheetsEndpoint,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: signup chain: %w", err)
	}

	// A nil *SubmissionNotifier must not become a non-nil interface.
	var n delivery.Notifier
	if notifier != nil {
		n = notifier
	}
	terminal := delivery.NewLogTerminal(n, logger)
	return delivery.NewChain(intake.FormSignup, []delivery.Sink{webhook, sheets}, terminal, logger, m), nil
}

// BuildFeedbackChain wires the feedback webhook ahead of the log terminal.
func BuildFeedbackChain(cfg *appconfig.Config, logger *logging.Logger, m *metrics.IntakeMetrics) *delivery.Chain {
	webhook := delivery.NewWebhookSink(delivery.WebhookConfig{
		Name:    "n8n",
		URL:     cfg.FeedbackWebhookURL,
		Timeout: cfg.SinkTimeout,
	}, logger)
	return delivery.NewChain(intake.FormFeedback, []delivery.Sink{webhook}, delivery.NewLogTerminal(nil, logger), logger, m)
}
