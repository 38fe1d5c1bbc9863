package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vladimiradmaev/recipebox/internal/logger"
)

type Config struct {
	TelegramToken string
	DB            DBConfig
	Redis         RedisConfig
	Logger        LoggerConfig
	Import        ImportConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DSN returns the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a redis address is configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

type ImportConfig struct {
	UserAgent     string
	Timeout       time.Duration
	ReimportDelay time.Duration
	PageCacheTTL  time.Duration
}

var defaults = map[string]any{
	"db.host":               "localhost",
	"db.port":               "5432",
	"db.user":               "postgres",
	"db.password":           "postgres",
	"db.name":               "recipebox",
	"redis.addr":            "",
	"redis.password":        "",
	"redis.db":              0,
	"log.level":             "info",
	"log.output":            "logs/recipebox.log",
	"log.format":            "json",
	"import.user_agent":     "recipebox/1.0 (+https://github.com/vladimiradmaev/recipebox)",
	"import.timeout":        "15s",
	"import.reimport_delay": "2s",
	"import.page_cache_ttl": "1h",
}

// Load reads configuration from the environment, after loading a .env file if
// one exists. Keys map to env vars by upper-casing and replacing dots with
// underscores, e.g. import.reimport_delay -> IMPORT_REIMPORT_DELAY.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("telegram_token", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	cfg := &Config{
		TelegramToken: v.GetString("telegram_token"),
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(v.GetString("log.level")),
			OutputPath: v.GetString("log.output"),
			Format:     v.GetString("log.format"),
		},
		Import: ImportConfig{
			UserAgent:     v.GetString("import.user_agent"),
			Timeout:       v.GetDuration("import.timeout"),
			ReimportDelay: v.GetDuration("import.reimport_delay"),
			PageCacheTTL:  v.GetDuration("import.page_cache_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no usable default
func (c *Config) Validate() error {
	var problems []string
	if c.DB.Host == "" || c.DB.DBName == "" {
		problems = append(problems, "database host and name are required")
	}
	if c.Import.Timeout <= 0 {
		problems = append(problems, "IMPORT_TIMEOUT must be positive")
	}
	if c.Import.ReimportDelay < 0 {
		problems = append(problems, "IMPORT_REIMPORT_DELAY must not be negative")
	}
	if c.Import.PageCacheTTL < 0 {
		problems = append(problems, "IMPORT_PAGE_CACHE_TTL must not be negative")
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.Logger.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
