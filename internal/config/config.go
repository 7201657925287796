package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidProviderSource       = errors.New("invalid question provider source")
)

// Question provider sources.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"`         // current application environment (local, dev, production etc)
	TelegramAPIToken string      `mapstructure:"-"`           // Telegram API token loaded from environment
	Quiz             Quiz        `mapstructure:"quiz"`        // session engine settings
	Provider         Provider    `mapstructure:"provider"`    // where question pools come from
	Server           Server      `mapstructure:"server"`      // question server settings
	DB               DB          `mapstructure:"database"`    // database configuration section
	Redis            Redis       `mapstructure:"redis"`       // pool cache configuration section
	Telegram         Telegram    `mapstructure:"telegram"`    // bot behaviour
	Maintenance      Maintenance `mapstructure:"maintenance"` // background jobs
}

// Quiz contains the session engine and default user settings.
type Quiz struct {
	DefaultCount      int           `mapstructure:"default_count"`      // questions per session when the user chose none
	DefaultLanguage   string        `mapstructure:"default_language"`   // language tag for new users
	DefaultDifficulty string        `mapstructure:"default_difficulty"` // difficulty tag for new users
	Difficulties      []string      `mapstructure:"difficulties"`       // difficulty tags offered to users
	IntroInterval     time.Duration `mapstructure:"intro_interval"`     // how long a seen intro stays hidden
	Tiers             Tiers         `mapstructure:"tiers"`              // classification thresholds
	Contact           string        `mapstructure:"contact"`            // shown under every result, empty to hide
}

// Tiers holds the inclusive lower bounds of the top and mid tiers.
type Tiers struct {
	Top float64 `mapstructure:"top"`
	Mid float64 `mapstructure:"mid"`
}

// Provider selects and configures the question source.
type Provider struct {
	Source      string        `mapstructure:"source"`       // file, http or postgres
	Dir         string        `mapstructure:"dir"`          // directory with <lang>.json files
	BaseURL     string        `mapstructure:"base_url"`     // base URL serving /lang/<lang>.json
	HTTPTimeout time.Duration `mapstructure:"http_timeout"` // per-request timeout of the HTTP source
}

// Server contains the question server listen address.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains the pool cache settings. An empty address disables the cache.
type Redis struct {
	Addr     string        `mapstructure:"-"`
	Password string        `mapstructure:"-"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Telegram contains bot behaviour settings.
type Telegram struct {
	Debug         bool `mapstructure:"debug"`
	UpdateTimeout int  `mapstructure:"update_timeout"`
}

// Maintenance configures the cron jobs of the bot. An empty schedule disables a job.
type Maintenance struct {
	EvictSchedule   string        `mapstructure:"evict_schedule"`   // drop idle per-chat sessions
	SessionTTL      time.Duration `mapstructure:"session_ttl"`      // idle time before a session is dropped
	RefreshSchedule string        `mapstructure:"refresh_schedule"` // reload cached pools
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Enabled reports whether a database URL is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Load reads configuration for the Telegram bot. The bot token is required.
func Load() (*Config, error) {
	cfg, err := LoadFrom("./config")
	if err != nil {
		return nil, err
	}

	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return cfg, nil
}

// LoadFrom reads configuration from <dir>/config.yaml and environment variables.
// A .env file in the working directory is loaded first if present.
func LoadFrom(dir string) (*Config, error) {
	// Existing environment variables take precedence over .env.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Addr = v.GetString("redis_addr")
	cfg.Redis.Password = v.GetString("redis_password")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("quiz.default_count", 5)
	v.SetDefault("quiz.default_language", "de")
	v.SetDefault("quiz.default_difficulty", "curious")
	v.SetDefault("quiz.difficulties", []string{"curious", "bitcoiner", "satoshi"})
	v.SetDefault("quiz.intro_interval", "720h")
	v.SetDefault("quiz.tiers.top", 0.85)
	v.SetDefault("quiz.tiers.mid", 0.60)
	v.SetDefault("quiz.contact", "")

	v.SetDefault("provider.source", SourceFile)
	v.SetDefault("provider.dir", "assets/lang")
	v.SetDefault("provider.base_url", "http://localhost:8080")
	v.SetDefault("provider.http_timeout", "10s")

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.update_timeout", 60)

	v.SetDefault("maintenance.evict_schedule", "*/15 * * * *")
	v.SetDefault("maintenance.session_ttl", "2h")
	v.SetDefault("maintenance.refresh_schedule", "0 * * * *")
}

func (c *Config) validate() error {
	switch c.Provider.Source {
	case SourceFile, SourceHTTP:
	case SourcePostgres:
		if !c.DB.Enabled() {
			return fmt.Errorf("%w: postgres source requires DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProviderSource, c.Provider.Source)
	}

	if c.Quiz.DefaultCount <= 0 {
		return fmt.Errorf("quiz.default_count must be positive, got %d", c.Quiz.DefaultCount)
	}
	thresholds := service.Thresholds{Top: c.Quiz.Tiers.Top, Mid: c.Quiz.Tiers.Mid}
	if err := thresholds.Validate(); err != nil {
		return fmt.Errorf("quiz.tiers: %w", err)
	}

	return nil
}
