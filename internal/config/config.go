package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"

	GatewayEnvTest = "test"
	GatewayEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
}

type AppConfig struct {
	Env         string `envconfig:"APP_ENV" default:"dev"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	BackendURL  string `envconfig:"BACKEND_URL" default:"http://localhost:8080"`
}

type HTTPConfig struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	RateLimitRPS   float64  `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int      `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" default:"funcity.db"`
}

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	TTL    time.Duration `envconfig:"JWT_ACCESS_TTL" default:"24h"`
}

// GatewayConfig holds merchant credentials for the payment gateway.
// It is built once at startup and passed to payment.NewClient.
type GatewayConfig struct {
	MerchantKey  string        `envconfig:"EASEBUZZ_KEY"`
	MerchantSalt string        `envconfig:"EASEBUZZ_SALT"`
	Env          string        `envconfig:"EASEBUZZ_ENV" default:"test"`
	IframeMode   bool          `envconfig:"EASEBUZZ_IFRAME" default:"false"`
	Timeout      time.Duration `envconfig:"EASEBUZZ_TIMEOUT" default:"15s"`
	BaseURL      string        `envconfig:"EASEBUZZ_BASE_URL"`
	FrontendURL  string        `ignored:"true"`
	BackendURL   string        `ignored:"true"`
}

func (g GatewayConfig) GatewayBaseURL() string {
	if g.BaseURL != "" {
		return strings.TrimRight(g.BaseURL, "/")
	}
	if g.Env == GatewayEnvProd {
		return "https://pay.easebuzz.in"
	}
	return "https://testpay.easebuzz.in"
}

type RedisConfig struct {
	URL      string        `envconfig:"REDIS_URL"`
	SlotsTTL time.Duration `envconfig:"SLOT_CACHE_TTL" default:"30s"`
}

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"funcity.payments"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	sections := []interface{}{&cfg.App, &cfg.HTTP, &cfg.Database, &cfg.JWT, &cfg.Gateway, &cfg.Redis, &cfg.AMQP}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	cfg.App.Env = strings.ToLower(strings.TrimSpace(cfg.App.Env))
	if cfg.App.Env == "" {
		cfg.App.Env = "dev"
	}
	cfg.App.FrontendURL = strings.TrimRight(strings.TrimSpace(cfg.App.FrontendURL), "/")
	cfg.App.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.App.BackendURL), "/")
	cfg.Gateway.Env = strings.ToLower(strings.TrimSpace(cfg.Gateway.Env))
	if cfg.Gateway.Env == "" {
		cfg.Gateway.Env = GatewayEnvTest
	}
	cfg.Gateway.MerchantKey = strings.TrimSpace(cfg.Gateway.MerchantKey)
	cfg.Gateway.MerchantSalt = strings.TrimSpace(cfg.Gateway.MerchantSalt)
	cfg.Gateway.FrontendURL = cfg.App.FrontendURL
	cfg.Gateway.BackendURL = cfg.App.BackendURL

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("gateway config: env=%s iframe=%t base_url=%s", cfg.Gateway.Env, cfg.Gateway.IframeMode, cfg.Gateway.GatewayBaseURL())

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Gateway.Env != GatewayEnvTest && cfg.Gateway.Env != GatewayEnvProd {
		return fmt.Errorf("EASEBUZZ_ENV must be one of: test, prod")
	}
	if cfg.Gateway.Timeout <= 0 {
		return fmt.Errorf("EASEBUZZ_TIMEOUT must be > 0")
	}
	if cfg.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.App.FrontendURL == "" {
		return fmt.Errorf("FRONTEND_URL must not be empty")
	}
	if cfg.App.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL must not be empty")
	}
	if cfg.HTTP.RateLimitRPS <= 0 || cfg.HTTP.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}

	if IsProdLike(cfg.App.Env) {
		if isEmptyOrDefault(cfg.JWT.Secret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.Gateway.MerchantKey == "" || cfg.Gateway.MerchantSalt == "" {
			return fmt.Errorf("in prod/release EASEBUZZ_KEY and EASEBUZZ_SALT must be set")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
