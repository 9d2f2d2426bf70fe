package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`      // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`        // Telegram API token loaded from environment
	Bot              Bot     `mapstructure:"bot"`      // bot behaviour section
	QuizAPI          QuizAPI `mapstructure:"quiz_api"` // quiz API section
	DB               DB      `mapstructure:"database"` // database configuration section
	Redis            Redis   `mapstructure:"redis"`    // cache configuration section
}

// Bot contains Telegram bot options.
type Bot struct {
	Debug         bool `mapstructure:"debug"`          // log raw Bot API traffic
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
	HistoryLimit  int  `mapstructure:"history_limit"`  // results shown by /history
}

// QuizAPI contains the quiz API location.
type QuizAPI struct {
	BaseURL       string        `mapstructure:"base_url"`        // root of GET /api/quizzes/{difficulty}
	ResultBaseURL string        `mapstructure:"result_base_url"` // root of the /result page linked from the results screen
	Timeout       time.Duration `mapstructure:"timeout"`         // limit for a single fetch, updates wait on it
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether results should be stored.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Redis contains quiz cache parameters.
type Redis struct {
	Addr     string        `mapstructure:"addr"`      // host:port, empty disables the cache
	Password string        `mapstructure:"password"`  // AUTH password
	DB       int           `mapstructure:"db"`        // logical database index
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // lifetime of a cached quiz set
}

// Enabled reports whether quiz sets should be cached.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Populate the environment from .env when present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("bot.debug", false)
	v.SetDefault("bot.update_timeout", 60)
	v.SetDefault("bot.history_limit", 5)
	v.SetDefault("quiz_api.base_url", "http://localhost:5001")
	v.SetDefault("quiz_api.result_base_url", "")
	v.SetDefault("quiz_api.timeout", "15s")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "10m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("quiz_api.base_url", "QUIZ_API_BASE_URL")
	_ = v.BindEnv("quiz_api.result_base_url", "QUIZ_RESULT_BASE_URL")
	_ = v.BindEnv("quiz_api.timeout", "QUIZ_API_TIMEOUT")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if cfg.QuizAPI.BaseURL == "" {
		return nil, fmt.Errorf("quiz_api.base_url: %w", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}
