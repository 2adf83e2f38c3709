package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matrixmedia/matrix/internal/api/identity"
	"github.com/matrixmedia/matrix/internal/api/mail"
	"github.com/matrixmedia/matrix/internal/api/media"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/jwtx"
)

type Config struct {
	Issuer         string        // Issuer claim for session tokens (default: matrix-api)
	SessionTTL     time.Duration // Session lifetime (default: 168h)
	SessionKeyFile string        // Path to the Ed25519 session signing key, created when missing (default: ./session.key)
	DatabaseFile   string        // Path to SQLite database file (default: ./matrix.db)
	PepperFile     string        // Path to file containing pepper for password hashing (default: ./pepper)

	CookieName   string // Session cookie name (default: token)
	CookieSecure bool   // Mark cookies Secure and SameSite=None (default: true)

	ClientURL   string   // Where the browser lands after OAuth sign in (default: /)
	BackendURL  string   // Public base URL of this service, used for OAuth callbacks (default: http://localhost:<port>)
	CORSOrigins []string // Allowed browser origins, from comma separated FRONTEND_URLS

	OTPTTL         time.Duration // Password reset code validity (default: 5m)
	OTPCooldown    time.Duration // Minimum age of a code before another is issued (default: 2m)
	MaxUploadBytes int64         // Per image upload limit (default: 5 MiB)

	SMTP      mail.SMTPConfig    // Outgoing mail; logged instead when SMTP_HOST is unset, body at debug level only
	S3        media.S3Config     // Image storage; uploads are refused when S3_BUCKET is unset
	Providers identity.Providers // OAuth providers; a provider is enabled once its id and secret are set

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("MATRIX_ISSUER", "matrix-api"),
		SessionTTL:     getEnvDurationOrDefault("MATRIX_SESSION_TTL", jwtx.DefaultSessionTTL),
		SessionKeyFile: getEnvOrDefault("MATRIX_SESSION_KEY_FILE", "session.key"),
		DatabaseFile:   getEnvOrDefault("MATRIX_DATABASE_FILE", "matrix.db"),
		PepperFile:     getEnvOrDefault("MATRIX_PEPPER_FILE", "pepper"),

		CookieName:   getEnvOrDefault("MATRIX_COOKIE_NAME", "token"),
		CookieSecure: getEnvBoolOrDefault("MATRIX_COOKIE_SECURE", true),

		ClientURL:   getEnvOrDefault("MATRIX_CLIENT_URL", "/"),
		BackendURL:  os.Getenv("MATRIX_BACKEND_URL"),
		CORSOrigins: splitList(os.Getenv("FRONTEND_URLS")),

		OTPTTL:         getEnvDurationOrDefault("MATRIX_OTP_TTL", service.DefaultOTPTTL),
		OTPCooldown:    getEnvDurationOrDefault("MATRIX_OTP_COOLDOWN", service.DefaultOTPCooldown),
		MaxUploadBytes: int64(getEnvIntOrDefault("MATRIX_MAX_UPLOAD_BYTES", int(service.DefaultMaxUploadBytes))),

		SMTP: mail.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnvOrDefault("SMTP_FROM", "no-reply@matrix.local"),
		},
		S3: media.S3Config{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        getEnvOrDefault("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Providers: identity.Providers{
			Google:   providerFromEnv("GOOGLE"),
			GitHub:   providerFromEnv("GITHUB"),
			Facebook: providerFromEnv("FACEBOOK"),
		},

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.Providers.CallbackBase = cfg.BackendURL + "/api/v1/user/auth"

	return cfg
}

func providerFromEnv(prefix string) identity.ProviderConfig {
	return identity.ProviderConfig{
		ClientID:     os.Getenv(prefix + "_CLIENT_ID"),
		ClientSecret: os.Getenv(prefix + "_CLIENT_SECRET"),
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
