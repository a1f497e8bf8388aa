package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables use the TODOAPI_ prefix with
// underscores for nesting (e.g. TODOAPI_DATABASE_URL) and take
// precedence over values from the config file.
// Returns a populated Config or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables carry the load.
	}

	v.SetEnvPrefix("TODOAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so
	// bind every key we expect explicitly.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// configKeys lists every configuration key so BindEnv can wire the
// corresponding environment variables.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"redis.url",
	"redis.stats_ttl_seconds",
	"auth.jwt_secret",
	"auth.access_token_lifetime_minutes",
	"auth.refresh_token_lifetime_minutes",
	"auth.cookie_secure",
	"notify.qstash_url",
	"notify.qstash_token",
	"notify.webhook_base_url",
	"notify.signing_key_current",
	"notify.signing_key_next",
	"notify.resend_api_key",
	"notify.email_from",
	"notify.frontend_url",
	"notify.worker_count",
	"notify.queue_size",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("redis.stats_ttl_seconds", 900)
	v.SetDefault("auth.access_token_lifetime_minutes", 5)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 1440)
	v.SetDefault("auth.cookie_secure", true)
	v.SetDefault("notify.qstash_url", "https://qstash.upstash.io")
	v.SetDefault("notify.email_from", "noreply@yourdomain.com")
	v.SetDefault("notify.worker_count", 2)
	v.SetDefault("notify.queue_size", 100)
}
