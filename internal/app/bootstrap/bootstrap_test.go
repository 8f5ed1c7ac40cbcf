package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/quicksay/quicksay-web/internal/config"
	"github.com/quicksay/quicksay-web/internal/notify"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

type fakeSES struct{}

func (fakeSES) SendEmail(context.Context, *sesv2.SendEmailInput, ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	return &sesv2.SendEmailOutput{}, nil
}

func TestBuildEmailSenderRequiresConfig(t *testing.T) {
	_, err := BuildEmailSender(nil, nil, logging.New("error"))
	assert.Error(t, err)
}

func TestBuildEmailSenderProviders(t *testing.T) {
	logger := logging.New("error")

	cases := []struct {
		name string
		cfg  appconfig.Config
		ses  notify.SESAPI
		want any
	}{
		{name: "stub default", cfg: appconfig.Config{}, want: &notify.StubEmailSender{}},
		{name: "sendgrid", cfg: appconfig.Config{EmailProvider: "sendgrid", SendGridAPIKey: "SG.key", SendGridFromEmail: "beta@quicksay.app"}, want: &notify.SendGridSender{}},
		{name: "sendgrid missing key", cfg: appconfig.Config{EmailProvider: "sendgrid"}, want: &notify.StubEmailSender{}},
		{name: "ses", cfg: appconfig.Config{EmailProvider: "ses", SESFromEmail: "beta@quicksay.app"}, ses: fakeSES{}, want: &notify.SESSender{}},
		{name: "ses missing client", cfg: appconfig.Config{EmailProvider: "ses", SESFromEmail: "beta@quicksay.app"}, want: &notify.StubEmailSender{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			sender, err := BuildEmailSender(&cfg, tc.ses, logger)
			require.NoError(t, err)
			assert.IsType(t, tc.want, sender)
		})
	}
}

type recordingSES struct {
	input *sesv2.SendEmailInput
}

func (r *recordingSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	r.input = in
	return &sesv2.SendEmailOutput{}, nil
}

func TestBuildEmailSenderSESUsesEmailFromName(t *testing.T) {
	client := &recordingSES{}
	cfg := &appconfig.Config{EmailProvider: "ses", SESFromEmail: "beta@quicksay.app", EmailFromName: "QuickSay Beta"}

	sender, err := BuildEmailSender(cfg, client, logging.New("error"))
	require.NoError(t, err)
	require.NoError(t, sender.Send(context.Background(), notify.Notification{To: "team@quicksay.app", Subject: "s", Text: "t"}))

	require.NotNil(t, client.input)
	assert.Equal(t, `"QuickSay Beta" <beta@quicksay.app>`, *client.input.FromEmailAddress)
}

func TestBuildEmailSenderUnknownProvider(t *testing.T) {
	_, err := BuildEmailSender(&appconfig.Config{EmailProvider: "pigeon"}, nil, logging.New("error"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pigeon")
}

func TestBuildNotifierWithoutRecipient(t *testing.T) {
	assert.Nil(t, BuildNotifier(&appconfig.Config{}, notify.NewStubEmailSender(nil), nil))
	assert.Nil(t, BuildNotifier(nil, nil, nil))
}

func TestBuildSignupChainSinkOrder(t *testing.T) {
	cfg := &appconfig.Config{
		SignupWebhookURL: "http://127.0.0.1:1/hook",
		SheetsAPIKey:     "key",
		SheetsID:         "sheet",
		SheetsRange:      appconfig.DefaultSheetsRange,
		SinkTimeout:      time.Second,
	}
	chain, err := BuildSignupChain(context.Background(), cfg, nil, logging.New("error"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"n8n", "sheets"}, chain.Sinks())
}

func TestBuildFeedbackChainSingleSink(t *testing.T) {
	chain := BuildFeedbackChain(&appconfig.Config{FeedbackWebhookURL: "http://example.invalid"}, logging.New("error"), nil)
	assert.Equal(t, []string{"n8n"}, chain.Sinks())
}

func TestBuildRequiresConfig(t *testing.T) {
	_, err := Build(context.Background(), nil, nil, Deps{})
	assert.Error(t, err)
}

func TestBuildServesSignupThroughWebhook(t *testing.T) {
	var (
		mu       sync.Mutex
		received map[string]any
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	cfg := &appconfig.Config{
		SiteOrigin:       appconfig.DefaultSiteOrigin,
		MetricsEnabled:   true,
		SignupWebhookURL: hook.URL,
		SinkTimeout:      time.Second,
		EmailProvider:    "stub",
	}
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	app, err := Build(context.Background(), cfg, logging.New("error"), Deps{Clock: func() time.Time { return fixed }})
	require.NoError(t, err)
	require.NotNil(t, app.Registry)

	body := `{"name":"Ada","email":"ADA@example.com","useCase":"coding","windowsVersion":"windows-11"}`
	req := httptest.NewRequest(http.MethodPost, "/api/beta-signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "ada@example.com", received["email"])
	assert.Equal(t, "2025-03-01T12:00:00.000Z", received["timestamp"])

	mrr := httptest.NewRecorder()
	app.Handler.ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, mrr.Code)
	assert.Contains(t, mrr.Body.String(), "quicksay_intake_submissions_total")
}

func TestBuildWithoutMetrics(t *testing.T) {
	app, err := Build(context.Background(), &appconfig.Config{SinkTimeout: time.Second}, logging.New("error"), Deps{})
	require.NoError(t, err)
	assert.Nil(t, app.Registry)

	rr := httptest.NewRecorder()
	app.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
