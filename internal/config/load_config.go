package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const envDevelopment = "development"

// Config holds all configuration for the application
type Config struct {
	Port   int    `env:"PORT" envDefault:"3000"`
	AppEnv string `env:"APP_ENV"`

	OpenAIAPIKey            string  `env:"OPENAI_API_KEY"`
	OpenAIModel             string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIMaxTokens         int     `env:"OPENAI_MAX_TOKENS" envDefault:"300"`
	OpenAITemperature       float32 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
	OpenAIBaseURL           string  `env:"OPENAI_BASE_URL"`
	OpenAIValidateOnStartup bool    `env:"OPENAI_VALIDATE_ON_STARTUP" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	MetricsAddr        string   `env:"METRICS_ADDR"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
}

// ------------------------------------------------------------------------------------------------------
// Load reads an optional .env file and then the process environment.
// A missing credential is not an error: the service starts in offline mode.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

// ------------------------------------------------------------------------------------------------------
func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.OpenAIMaxTokens <= 0 {
		return nil, fmt.Errorf("OPENAI_MAX_TOKENS must be positive, got %d", cfg.OpenAIMaxTokens)
	}
	if cfg.OpenAITemperature < 0 || cfg.OpenAITemperature > 2 {
		return nil, fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2, got %v", cfg.OpenAITemperature)
	}

	return cfg, nil
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == envDevelopment
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// ------------------------------------------------------------------------------------------------------
func (c *Config) HasOpenAIKey() bool {
	return c.OpenAIAPIKey != ""
}
