package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quicksay/quicksay-web/internal/api/router"
	appconfig "github.com/quicksay/quicksay-web/internal/config"
	"github.com/quicksay/quicksay-web/internal/forms"
	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/internal/notify"
	"github.com/quicksay/quicksay-web/internal/observability/metrics"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

// Deps are the externally constructed clients the app needs.
type Deps struct {
	// SES is only used when EMAIL_PROVIDER=ses.
	SES   notify.SESAPI
	Clock intake.Clock
}

// App is the fully wired HTTP surface shared by the server and the Lambda.
type App struct {
	Handler  http.Handler
	Metrics  *metrics.IntakeMetrics
	Registry *prometheus.Registry
}

// Build wires config into sinks, chains, handlers and the router.
func Build(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, deps Deps) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var (
		registry       *prometheus.Registry
		metricsHandler http.Handler
		intakeMetrics  *metrics.IntakeMetrics
	)
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		intakeMetrics = metrics.NewIntakeMetrics(registry)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	sender, err := BuildEmailSender(cfg, deps.SES, logger)
	if err != nil {
		return nil, err
	}
	notifier := BuildNotifier(cfg, sender, logger)

	signup, err := BuildSignupChain(ctx, cfg, notifier, logger, intakeMetrics)
	if err != nil {
		return nil, err
	}
	feedback := BuildFeedbackChain(cfg, logger, intakeMetrics)

	logger.Info("delivery chains ready",
		"signup_sinks", signup.Sinks(),
		"feedback_sinks", feedback.Sinks(),
		"notification", notifier.Recipient() != "",
	)

	formsHandler := forms.NewHandler(forms.Config{
		Signup:       signup,
		Feedback:     feedback,
		Enricher:     intake.NewEnricher(deps.Clock),
		MaxBodyBytes: int64(cfg.MaxBodyBytes),
		Logger:       logger,
		Metrics:      intakeMetrics,
	})

	return &App{
		Handler: router.New(&router.Config{
			Logger:         logger,
			Forms:          formsHandler,
			SiteOrigin:     cfg.SiteOrigin,
			MetricsHandler: metricsHandler,
		}),
		Metrics:  intakeMetrics,
		Registry: registry,
	}, nil
}
