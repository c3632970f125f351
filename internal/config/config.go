package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/recaptcha-form/internal/pkg/validate"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	AllowedOrigins []string // CORS allowed origins
	ThankYouPath   string   `validate:"required,startswith=/"`

	Recaptcha Recaptcha

	// Optional delivery of accepted submissions. Empty values disable a channel.
	NotifyEmailTo  string `validate:"omitempty,email"`
	SMTPHost       string
	SMTPPort       int
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SNSTopicARN    string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
}

// Recaptcha holds the reCAPTCHA v3 keys and verification settings.
// SecretKey is server-only and must never be rendered into a page.
type Recaptcha struct {
	SiteKey        string  `validate:"required"`
	SecretKey      string  `validate:"required"`
	VerifyURL      string  `validate:"required,url"`
	Action         string  `validate:"required"`
	ScoreThreshold float64 `validate:"gte=0,lte=1"`
	Timeout        time.Duration // zero means no timeout
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		ThankYouPath:   getEnv("THANK_YOU_PATH", "/thank-you"),
		Recaptcha: Recaptcha{
			SiteKey:        getEnv("RECAPTCHA_SITE_KEY", ""),
			SecretKey:      getEnv("RECAPTCHA_SECRET_KEY", ""),
			VerifyURL:      getEnv("RECAPTCHA_VERIFY_URL", defaultVerifyURL),
			Action:         getEnv("RECAPTCHA_ACTION", "submit"),
			ScoreThreshold: getEnvFloat("RECAPTCHA_SCORE_THRESHOLD", 0.5),
			Timeout:        getEnvDuration("RECAPTCHA_TIMEOUT", 0),
		},
		NotifyEmailTo:  getEnv("NOTIFY_EMAIL_TO", ""),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SNSTopicARN:    getEnv("SNS_TOPIC_ARN", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

// Validate checks that the required keys are present and well-formed.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
