package forms

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/quicksay/quicksay-web/internal/delivery"
	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/internal/observability/metrics"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

const (
	signupFailureMessage   = "Something went wrong. Please try again."
	feedbackFailureMessage = "Invalid request"

	defaultMaxBodyBytes = 64 << 10
)

// Deliverer hands an enriched submission to its sinks.
type Deliverer interface {
	Deliver(ctx context.Context, sub intake.Submission) delivery.Outcome
}

// Config wires a Handler.
type Config struct {
	Signup       Deliverer
	Feedback     Deliverer
	Enricher     *intake.Enricher
	MaxBodyBytes int64
	Logger       *logging.Logger
	Metrics      *metrics.IntakeMetrics
}

// Handler serves the landing page form endpoints.
type Handler struct {
	signup       Deliverer
	feedback     Deliverer
	enricher     *intake.Enricher
	maxBodyBytes int64
	logger       *logging.Logger
	metrics      *metrics.IntakeMetrics
}

// NewHandler creates a forms handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Enricher == nil {
		cfg.Enricher = intake.NewEnricher(nil)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Signup == nil {
		cfg.Signup = delivery.NewChain(intake.FormSignup, nil, nil, cfg.Logger, cfg.Metrics)
	}
	if cfg.Feedback == nil {
		cfg.Feedback = delivery.NewChain(intake.FormFeedback, nil, nil, cfg.Logger, cfg.Metrics)
	}
	return &Handler{
		signup:       cfg.Signup,
		feedback:     cfg.Feedback,
		enricher:     cfg.Enricher,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
	}
}

// BetaSignup handles POST /api/beta-signup
func (h *Handler) BetaSignup(w http.ResponseWriter, r *http.Request) {
	form := intake.FormSignup
	defer h.recoverPanic(w, r, form)

	payload, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, form, err)
		return
	}

	if intake.IsSpam(form, payload) {
		h.acceptSpam(w, r, form)
		return
	}

	if err := intake.ValidateSignup(payload); err != nil {
		h.reject(w, r, form, err)
		return
	}
	signup, err := intake.NewSignupPayload(payload)
	if err != nil {
		h.fail(w, r, form, err)
		return
	}

	sub := h.enricher.EnrichSignup(signup)
	h.deliver(w, r, h.signup, sub)
}

// BetaFeedback handles POST /api/beta-feedback
func (h *Handler) BetaFeedback(w http.ResponseWriter, r *http.Request) {
	form := intake.FormFeedback
	defer h.recoverPanic(w, r, form)

	payload, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, form, err)
		return
	}

	if intake.IsSpam(form, payload) {
		h.acceptSpam(w, r, form)
		return
	}

	if err := intake.ValidateFeedback(payload); err != nil {
		h.reject(w, r, form, err)
		return
	}

	sub := h.enricher.EnrichFeedback(payload, r.Header.Get("User-Agent"))
	h.deliver(w, r, h.feedback, sub)
}

// Preflight answers CORS preflight requests; the CORS middleware sets the headers.
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (intake.Payload, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer body.Close()
	return intake.DecodePayload(body)
}

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request, chain Deliverer, sub intake.Submission) {
	// Delivery outlives a client that hangs up; the submission was already accepted.
	ctx := context.WithoutCancel(r.Context())
	outcome := chain.Deliver(ctx, sub)

	h.logger.Info("submission accepted",
		"form", sub.Form,
		"delivered_by", outcome.DeliveredBy,
		"attempts", len(outcome.Attempts),
		"log_fallback", outcome.Fallback,
		"request_id", middleware.GetReqID(r.Context()),
	)
	h.metrics.ObserveSubmission(string(sub.Form), "accepted")
	writeSuccess(w)
}

func (h *Handler) acceptSpam(w http.ResponseWriter, r *http.Request, form intake.Form) {
	h.logger.Info("honeypot tripped; accepting silently",
		"form", form,
		"request_id", middleware.GetReqID(r.Context()),
	)
	h.metrics.ObserveSubmission(string(form), "spam")
	writeSuccess(w)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, form intake.Form, err error) {
	var ve *intake.ValidationError
	if !errors.As(err, &ve) {
		h.fail(w, r, form, err)
		return
	}
	h.logger.Info("submission rejected",
		"form", form,
		"field", ve.Field,
		"reason", ve.Message,
		"request_id", middleware.GetReqID(r.Context()),
	)
	h.metrics.ObserveSubmission(string(form), "rejected")
	writeFailure(w, http.StatusBadRequest, ve.Message)
}

// failureResponse is what each form answers on an unexpected error. Neither
// leaks the underlying cause.
func failureResponse(form intake.Form) (int, string) {
	if form == intake.FormFeedback {
		return http.StatusBadRequest, feedbackFailureMessage
	}
	return http.StatusInternalServerError, signupFailureMessage
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, form intake.Form, err error) {
	status, message := failureResponse(form)
	h.logger.Error("submission failed",
		"form", form,
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	)
	h.metrics.ObserveSubmission(string(form), "error")
	writeFailure(w, status, message)
}

func (h *Handler) recoverPanic(w http.ResponseWriter, r *http.Request, form intake.Form) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}
	h.fail(w, r, form, fmt.Errorf("panic: %v", rec))
}
