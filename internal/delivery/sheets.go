package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/quicksay/quicksay-web/internal/intake"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

var sheetsTracer = otel.Tracer("quicksay.internal.delivery.sheets")

// SignupColumns is the column order of the BetaSignups sheet.
var SignupColumns = []string{"timestamp", "name", "email", "useCase", "windowsVersion", "source"}

// SheetsConfig configures a SheetsSink.
type SheetsConfig struct {
	APIKey        string
	SpreadsheetID string
	Range         string
	Columns       []string
	Timeout       time.Duration
	// Endpoint replaces the Sheets API base URL, e.g. for a local mock.
	Endpoint string
}

// SheetsSink appends one row per submission to a Google Sheet.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	rng           string
	columns       []string
	timeout       time.Duration
	logger        *logging.Logger
}

// NewSheetsSink builds the sink. Without an API key and spreadsheet ID it
// returns an unconfigured sink rather than an error.
func NewSheetsSink(ctx context.Context, cfg SheetsConfig, logger *logging.Logger) (*SheetsSink, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Range == "" {
		cfg.Range = "BetaSignups!A:F"
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = SignupColumns
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	sink := &SheetsSink{
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		rng:           cfg.Range,
		columns:       cfg.Columns,
		timeout:       cfg.Timeout,
		logger:        logger,
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" || sink.spreadsheetID == "" {
		return sink, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(cfg.Endpoint, "/")+"/"))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("delivery: sheets client: %w", err)
	}
	sink.svc = svc
	return sink, nil
}

func (s *SheetsSink) Name() string { return "sheets" }

func (s *SheetsSink) Configured() bool { return s.svc != nil }

// Deliver appends the submission as a single USER_ENTERED row.
func (s *SheetsSink) Deliver(ctx context.Context, sub intake.Submission) error {
	if s.svc == nil {
		return &SinkError{Sink: s.Name(), Err: errors.New("sheets client not configured")}
	}

	ctx, span := sheetsTracer.Start(ctx, "delivery.sheets.append", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("quicksay.form", string(sub.Form)),
		attribute.String("quicksay.sheets.range", s.rng),
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	values := &sheets.ValueRange{Values: [][]interface{}{sub.Row(s.columns)}}
	resp, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.rng, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sheets append failed")
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return &SinkError{Sink: s.Name(), StatusCode: apiErr.Code, Err: err}
		}
		return &SinkError{Sink: s.Name(), Err: err}
	}

	if resp.Updates != nil {
		s.logger.Debug("sheets row appended", "range", resp.Updates.UpdatedRange, "rows", resp.Updates.UpdatedRows)
	}
	return nil
}

var _ Sink = (*SheetsSink)(nil)
