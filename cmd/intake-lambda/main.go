package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/joho/godotenv"

	"github.com/quicksay/quicksay-web/cmd/mainconfig"
	"github.com/quicksay/quicksay-web/internal/app/bootstrap"
	appconfig "github.com/quicksay/quicksay-web/internal/config"
	"github.com/quicksay/quicksay-web/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	deps := bootstrap.Deps{}
	ses, err := mainconfig.NewSESClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	if ses != nil {
		deps.SES = ses
	}

	app, err := bootstrap.Build(ctx, cfg, logger, deps)
	if err != nil {
		logger.Error("failed to build handler", "error", err)
		os.Exit(1)
	}

	adapter := newAdapter(app.Handler)
	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, adapter, evt, logger)
	})
}

func newAdapter(h http.Handler) *httpadapter.HandlerAdapterV2 {
	return httpadapter.NewV2(withGatewayContext(h))
}

// handle proxies an API Gateway HTTP API event through the router. Events the
// adapter cannot turn into a request, such as a bad base64 body, get a 400.
func handle(ctx context.Context, adapter *httpadapter.HandlerAdapterV2, evt events.APIGatewayV2HTTPRequest, logger *logging.Logger) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := adapter.ProxyWithContext(ctx, evt)
	if err != nil {
		logger.Warn("lambda event rejected", "path", evt.RawPath, "request_id", evt.RequestContext.RequestID, "error", err)
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "invalid body"}, nil
	}
	return resp, nil
}

// withGatewayContext copies the caller IP and request id from the gateway
// request context into the headers the request logger reads.
func withGatewayContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gw, ok := core.GetAPIGatewayV2ContextFromContext(r.Context()); ok {
			if ip := strings.TrimSpace(gw.HTTP.SourceIP); ip != "" && r.Header.Get("X-Forwarded-For") == "" {
				r.Header.Set("X-Forwarded-For", ip)
			}
			if id := strings.TrimSpace(gw.RequestID); id != "" && r.Header.Get("X-Request-Id") == "" {
				r.Header.Set("X-Request-Id", id)
			}
		}
		next.ServeHTTP(w, r)
	})
}
