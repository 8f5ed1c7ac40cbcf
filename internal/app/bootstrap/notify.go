package bootstrap

import (
	"fmt"
	"strings"

	appconfig "github.com/quicksay/quicksay-web/internal/config"
	"github.com/quicksay/quicksay-web/internal/notify"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

// BuildEmailSender picks the email provider named by EMAIL_PROVIDER. Providers
// missing their credentials fall back to the stub sender with a warning.
func BuildEmailSender(cfg *appconfig.Config, ses notify.SESAPI, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch provider := strings.ToLower(strings.TrimSpace(cfg.EmailProvider)); provider {
	case "", "stub":
		return notify.NewStubEmailSender(logger), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" || cfg.SendGridFromEmail == "" {
			logger.Warn("sendgrid selected but not configured; using stub sender")
			return notify.NewStubEmailSender(logger), nil
		}
		return notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.EmailFromName,
		}, logger), nil
	case "ses":
		sender := notify.NewSESSender(ses, notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			logger.Warn("ses selected but not configured; using stub sender")
			return notify.NewStubEmailSender(logger), nil
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", provider)
	}
}

// BuildNotifier returns the signup notifier, or nil when no notification
// address is configured.
func BuildNotifier(cfg *appconfig.Config, sender notify.EmailSender, logger *logging.Logger) *notify.SubmissionNotifier {
	if cfg == nil {
		return nil
	}
	return notify.NewSubmissionNotifier(sender, cfg.NotificationEmail, cfg.NotificationSubject, logger)
}
