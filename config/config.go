package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-wide configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Bot      BotConfig      `mapstructure:"bot"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig holds the cross-origin settings.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig holds the PostgreSQL settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig holds the Redis settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BotConfig holds the assistant-level settings: the fixed timezone every
// date computation runs in, the Telegram transport credentials, and the
// static bearer token guarding the HTTP surface.
type BotConfig struct {
	Timezone      string `mapstructure:"timezone"`
	TelegramToken string `mapstructure:"telegram_token"`
	APIToken      string `mapstructure:"api_token"`
}

// Location resolves the configured timezone.
func (c *BotConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid bot.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// NotifyConfig holds the reminder engine settings. Alert times are local
// wall-clock "HH:MM" strings in bot.timezone; the poll interval drives the
// escalation checks.
type NotifyConfig struct {
	ClassBriefingAt   string        `mapstructure:"class_briefing_at"`
	OffdayAlertAt     string        `mapstructure:"offday_alert_at"`
	MidnightReviewAt  string        `mapstructure:"midnight_review_at"`
	SemesterCheckAt   string        `mapstructure:"semester_check_at"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	SendTimeout       time.Duration `mapstructure:"send_timeout"`
	OffdayHorizonDays int           `mapstructure:"offday_horizon_days"`
	CatchUpOnStart    bool          `mapstructure:"catch_up_on_start"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults, an optional yaml file, and
// PH_-prefixed environment variables (env > file > defaults).
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "productivity_helper")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Kuala_Lumpur")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("bot.timezone", "Asia/Kuala_Lumpur")

	v.SetDefault("notify.class_briefing_at", "22:00")
	v.SetDefault("notify.offday_alert_at", "20:00")
	v.SetDefault("notify.midnight_review_at", "00:00")
	v.SetDefault("notify.semester_check_at", "20:30")
	v.SetDefault("notify.poll_interval", "30m")
	v.SetDefault("notify.send_timeout", "10s")
	v.SetDefault("notify.offday_horizon_days", 90)
	v.SetDefault("notify.catch_up_on_start", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("PH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// no config file: run on defaults + env
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the critical configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config validation: server.port must be within 1-65535")
	}
	if _, err := c.Bot.Location(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	for key, val := range map[string]string{
		"notify.class_briefing_at":  c.Notify.ClassBriefingAt,
		"notify.offday_alert_at":    c.Notify.OffdayAlertAt,
		"notify.midnight_review_at": c.Notify.MidnightReviewAt,
		"notify.semester_check_at":  c.Notify.SemesterCheckAt,
	} {
		if _, err := time.Parse("15:04", val); err != nil {
			return fmt.Errorf("config validation: %s must be HH:MM, got %q", key, val)
		}
	}
	if c.Notify.PollInterval < time.Minute {
		return fmt.Errorf("config validation: notify.poll_interval must be at least 1m")
	}
	return nil
}
