package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/internal/observability/metrics"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

// Sink is an external delivery target for enriched submissions.
type Sink interface {
	// Name labels the sink in logs and metrics.
	Name() string
	// Configured reports whether the sink has the URL/credentials it needs.
	// Unconfigured sinks are skipped without counting as an attempt.
	Configured() bool
	Deliver(ctx context.Context, sub intake.Submission) error
}

// Terminal is the last step of a chain when no sink delivered. It cannot fail.
type Terminal interface {
	Accept(ctx context.Context, sub intake.Submission)
}

// Attempt records one sink call.
type Attempt struct {
	Sink     string
	Err      error
	Duration time.Duration
}

// Outcome summarizes a delivery run.
type Outcome struct {
	DeliveredBy string
	Attempts    []Attempt
	Fallback    bool
}

// Delivered reports whether a sink accepted the submission.
func (o Outcome) Delivered() bool {
	return o.DeliveredBy != ""
}

// SinkError is returned by sinks when the call failed or the target refused it.
type SinkError struct {
	Sink       string
	StatusCode int
	Err        error
}

func (e *SinkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("delivery: %s returned status %d", e.Sink, e.StatusCode)
	}
	return fmt.Sprintf("delivery: %s failed: %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// Chain tries sinks strictly in priority order and stops at the first one
// that accepts. Sink failures are logged and never reach the caller.
type Chain struct {
	form     intake.Form
	sinks    []Sink
	terminal Terminal
	logger   *logging.Logger
	metrics  *metrics.IntakeMetrics
}

// NewChain builds a chain for a form. A nil terminal falls back to LogTerminal.
func NewChain(form intake.Form, sinks []Sink, terminal Terminal, logger *logging.Logger, m *metrics.IntakeMetrics) *Chain {
	if logger == nil {
		logger = logging.Default()
	}
	if terminal == nil {
		terminal = NewLogTerminal(nil, logger)
	}
	return &Chain{
		form:     form,
		sinks:    sinks,
		terminal: terminal,
		logger:   logger,
		metrics:  m,
	}
}

// Sinks returns the names of the chain's sinks in priority order.
func (c *Chain) Sinks() []string {
	names := make([]string, 0, len(c.sinks))
	for _, s := range c.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Deliver runs the chain. It always completes; the outcome says how.
func (c *Chain) Deliver(ctx context.Context, sub intake.Submission) Outcome {
	var out Outcome
	for _, sink := range c.sinks {
		if sink == nil || !sink.Configured() {
			continue
		}

		start := time.Now()
		err := sink.Deliver(ctx, sub)
		elapsed := time.Since(start)
		out.Attempts = append(out.Attempts, Attempt{Sink: sink.Name(), Err: err, Duration: elapsed})
		c.metrics.ObserveSinkAttempt(string(c.form), sink.Name(), err == nil, elapsed.Seconds())

		if err == nil {
			out.DeliveredBy = sink.Name()
			c.logger.Info("submission delivered",
				"form", c.form,
				"sink", sink.Name(),
				"attempts", len(out.Attempts),
				"duration_ms", elapsed.Milliseconds(),
			)
			return out
		}

		c.logger.Warn("sink delivery failed; trying next",
			"form", c.form,
			"sink", sink.Name(),
			"error", err,
		)
	}

	out.Fallback = true
	c.metrics.ObserveFallback(string(c.form))
	c.terminal.Accept(ctx, sub)
	return out
}
