package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultSiteOrigin          = "https://quicksay.app"
	DefaultSignupWebhookURL    = "https://n8n.beekz.uk/webhook/beta-signup"
	DefaultFeedbackWebhookURL  = "https://n8n.beekz.uk/webhook/beta-feedback"
	DefaultSheetsRange         = "BetaSignups!A:F"
	DefaultNotificationSubject = "New QuickSay beta signup"
	DefaultEmailFromName       = "QuickSay"
)

// Config holds application configuration. It is loaded once at process start
// and handed to constructors; nothing mutates it afterwards.
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	SiteOrigin     string
	MetricsEnabled bool
	MaxBodyBytes   int

	// Sink configuration
	SignupWebhookURL   string
	FeedbackWebhookURL string
	SinkTimeout        time.Duration

	// Google Sheets fallback (signup only)
	SheetsAPIKey   string
	SheetsID       string
	SheetsRange    string
	SheetsEndpoint string

	// Notification (signup only)
	NotificationEmail   string
	NotificationSubject string
	EmailProvider       string
	// EmailFromName is the sender display name for every provider.
	EmailFromName       string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string

	// AWS (SES)
	SESFromEmail        string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SiteOrigin:     getEnv("SITE_ORIGIN", DefaultSiteOrigin),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		MaxBodyBytes:   getEnvAsInt("MAX_BODY_BYTES", 64<<10),

		SignupWebhookURL:   getEnv("N8N_WEBHOOK_URL", DefaultSignupWebhookURL),
		FeedbackWebhookURL: getEnv("N8N_FEEDBACK_WEBHOOK", DefaultFeedbackWebhookURL),
		SinkTimeout:        getEnvAsDuration("SINK_TIMEOUT", 10*time.Second),

		SheetsAPIKey:   getEnv("GOOGLE_SHEETS_API_KEY", ""),
		SheetsID:       getEnv("GOOGLE_SHEETS_ID", ""),
		SheetsRange:    getEnv("GOOGLE_SHEETS_RANGE", DefaultSheetsRange),
		SheetsEndpoint: getEnv("GOOGLE_SHEETS_ENDPOINT", ""),

		NotificationEmail:   getEnv("NOTIFICATION_EMAIL", ""),
		NotificationSubject: getEnv("NOTIFICATION_SUBJECT", DefaultNotificationSubject),
		EmailProvider:       strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "stub"))),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", getEnv("SENDGRID_FROM_NAME", DefaultEmailFromName)),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),

		SESFromEmail:        getEnv("SES_FROM_EMAIL", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
