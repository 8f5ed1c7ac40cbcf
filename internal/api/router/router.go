package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quicksay/quicksay-web/internal/forms"
	httpmiddleware "github.com/quicksay/quicksay-web/internal/http/middleware"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

const preflightMaxAge = 86400

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Forms          *forms.Handler
	SiteOrigin     string
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.Forms != nil {
		signupCORS := httpmiddleware.CORS(httpmiddleware.FormCORS{
			PreflightOrigin:     "*",
			Origin:              cfg.SiteOrigin,
			EchoOrigin:          true,
			AdvertiseOnResponse: true,
			MaxAge:              preflightMaxAge,
		})
		feedbackCORS := httpmiddleware.CORS(httpmiddleware.FormCORS{
			PreflightOrigin: cfg.SiteOrigin,
			Origin:          cfg.SiteOrigin,
			MaxAge:          preflightMaxAge,
		})

		r.Route("/api", func(api chi.Router) {
			api.With(signupCORS).Post("/beta-signup", cfg.Forms.BetaSignup)
			api.With(signupCORS).Options("/beta-signup", cfg.Forms.Preflight)
			api.With(feedbackCORS).Post("/beta-feedback", cfg.Forms.BetaFeedback)
			api.With(feedbackCORS).Options("/beta-feedback", cfg.Forms.Preflight)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
