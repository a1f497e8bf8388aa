package config

// Config holds all application configuration.
// It is loaded once at startup and injected into components as an
// immutable value; nothing mutates it after Load returns.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Notify   NotifyConfig   `mapstructure:"notify"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains connection settings for the cache backend.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
	// StatsTTLSeconds bounds how long cached todo statistics may live
	// when no write invalidates them first.
	StatsTTLSeconds int `mapstructure:"stats_ttl_seconds" validate:"required,gt=0"`
}

// AuthConfig contains all authentication and session settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// AccessTokenLifetimeMinutes is the lifetime of access tokens in minutes.
	AccessTokenLifetimeMinutes int `mapstructure:"access_token_lifetime_minutes" validate:"required,gt=0"`
	// RefreshTokenLifetimeMinutes is the lifetime of refresh tokens in minutes.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	// CookieSecure controls the Secure attribute on session cookies.
	// Disabled only for plain-HTTP local development.
	CookieSecure bool `mapstructure:"cookie_secure"`
}

// NotifyConfig contains settings for the asynchronous notification flow:
// the QStash publish side, the webhook receive side, and the mailer.
type NotifyConfig struct {
	// QStashURL is the base URL of the QStash publish API.
	QStashURL string `mapstructure:"qstash_url" validate:"required,url"`
	// QStashToken authenticates publish requests to QStash.
	QStashToken string `mapstructure:"qstash_token" validate:"required"`
	// WebhookBaseURL is this service's externally reachable base URL,
	// embedded in publish requests so QStash can call back.
	WebhookBaseURL string `mapstructure:"webhook_base_url" validate:"required,url"`
	// SigningKeyCurrent and SigningKeyNext are the rotating webhook
	// signing keys. Both are accepted so keys can rotate without
	// rejecting in-flight deliveries.
	SigningKeyCurrent string `mapstructure:"signing_key_current" validate:"required"`
	SigningKeyNext    string `mapstructure:"signing_key_next"    validate:"required"`
	// ResendAPIKey authenticates email sends to the Resend API.
	ResendAPIKey string `mapstructure:"resend_api_key" validate:"required"`
	// EmailFrom is the sender address for outgoing mail.
	EmailFrom string `mapstructure:"email_from" validate:"required,email"`
	// FrontendURL is linked from the welcome email body.
	FrontendURL string `mapstructure:"frontend_url" validate:"required,url"`
	// WorkerCount is the number of dispatcher workers publishing
	// notifications in the background.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	// QueueSize is the buffer size of the in-process notification queue.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}
