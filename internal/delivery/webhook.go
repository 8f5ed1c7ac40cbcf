package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

var webhookTracer = otel.Tracer("quicksay.internal.delivery.webhook")

// WebhookSink posts the submission as JSON to an automation webhook (n8n).
type WebhookSink struct {
	name       string
	url        string
	httpClient *http.Client
	// requireAccepted makes non-2xx responses count as failures.
	requireAccepted bool
	logger          *logging.Logger
}

// WebhookConfig configures a WebhookSink.
type WebhookConfig struct {
	Name            string
	URL             string
	Timeout         time.Duration
	RequireAccepted bool
	HTTPClient      *http.Client
}

// NewWebhookSink builds a webhook sink. An empty URL leaves it unconfigured.
func NewWebhookSink(cfg WebhookConfig, logger *logging.Logger) *WebhookSink {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Name == "" {
		cfg.Name = "webhook"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &WebhookSink{
		name:            cfg.Name,
		url:             strings.TrimSpace(cfg.URL),
		httpClient:      client,
		requireAccepted: cfg.RequireAccepted,
		logger:          logger,
	}
}

func (s *WebhookSink) Name() string { return s.name }

func (s *WebhookSink) Configured() bool { return s.url != "" }

// Deliver posts the record. Transport errors always fail; status codes only
// matter when the sink requires acceptance.
func (s *WebhookSink) Deliver(ctx context.Context, sub intake.Submission) error {
	ctx, span := webhookTracer.Start(ctx, "delivery.webhook.post", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("quicksay.form", string(sub.Form)),
		attribute.String("quicksay.sink", s.name),
	)

	body, err := json.Marshal(sub)
	if err != nil {
		return &SinkError{Sink: s.name, Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return &SinkError{Sink: s.name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook request failed")
		return &SinkError{Sink: s.name, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if s.requireAccepted && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		span.SetStatus(codes.Error, "webhook rejected submission")
		return &SinkError{Sink: s.name, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode >= 300 {
		s.logger.Warn("webhook returned non-success status", "sink", s.name, "status", resp.StatusCode)
	}
	return nil
}

var _ Sink = (*WebhookSink)(nil)
