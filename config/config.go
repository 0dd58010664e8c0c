package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config application settings, read from the environment (and .env).
type Config struct {
	Addr         string `envconfig:"ADDR" default:":5000"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"data/database.db"`
	SecureCookie bool   `envconfig:"SECURE_COOKIE" default:"false"`

	GroqAPIKey    string        `envconfig:"GROQ_API_KEY"`
	GroqAPIURL    string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com/openai/v1/chat/completions"`
	ChatModel     string        `envconfig:"CHAT_MODEL" default:"llama-3.1-8b-instant"`
	RemoteTimeout time.Duration `envconfig:"REMOTE_TIMEOUT" default:"15s"`

	FreshnessProvider string `envconfig:"FRESHNESS_PROVIDER" default:"groq"`
	FreshnessModel    string `envconfig:"FRESHNESS_MODEL" default:"llama-3.3-70b-versatile"`
	GeminiAPIKey      string `envconfig:"GEMINI_API_KEY"`
	GeminiModel       string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	SessionDriver string        `envconfig:"SESSION_DRIVER" default:"memory"`
	RedisURL      string        `envconfig:"REDIS_URL"`
	BoltPath      string        `envconfig:"BOLT_PATH" default:"data/sessions.db"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	FAQPath         string        `envconfig:"FAQ_PATH"`
	RateLimitDelay  time.Duration `envconfig:"RATE_LIMIT_DELAY" default:"1s"`
	DailyLimit      int           `envconfig:"DAILY_LIMIT" default:"100"`
	HistorySize     int           `envconfig:"HISTORY_SIZE" default:"6"`
	ExchangeLogSize int           `envconfig:"EXCHANGE_LOG_SIZE" default:"200"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	LogOutput     string `envconfig:"LOG_OUTPUT" default:"stdout"`
	LogFilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/foodpulse.log"`
	LogTimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// LogConfig logger settings.
type LogConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	TimeFormat string
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}
	return &cfg, nil
}

// Validate catches settings that would only fail later at runtime.
func (c *Config) Validate() error {
	var errs []error

	switch c.SessionDriver {
	case "memory", "bolt":
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when SESSION_DRIVER=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_DRIVER %q (memory, redis or bolt)", c.SessionDriver))
	}

	switch c.FreshnessProvider {
	case "groq", "none":
	case "gemini":
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when FRESHNESS_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown FRESHNESS_PROVIDER %q (groq, gemini or none)", c.FreshnessProvider))
	}

	if c.HistorySize <= 0 {
		errs = append(errs, errors.New("HISTORY_SIZE must be positive"))
	}
	if c.DailyLimit <= 0 {
		errs = append(errs, errors.New("DAILY_LIMIT must be positive"))
	}
	if c.RateLimitDelay < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_DELAY must not be negative"))
	}
	if c.RemoteTimeout <= 0 {
		errs = append(errs, errors.New("REMOTE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) Log() LogConfig {
	return LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		Output:     c.LogOutput,
		FilePath:   c.LogFilePath,
		TimeFormat: c.LogTimeFormat,
	}
}
