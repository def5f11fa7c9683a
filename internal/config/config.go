package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseDriver represents supported database drivers
type DatabaseDriver string

const (
	DriverMySQL    DatabaseDriver = "mysql"
	DriverPostgres DatabaseDriver = "postgres"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Reports  ReportsConfig  `mapstructure:"reports"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds JWT token settings
type JWTConfig struct {
	Secret               string        `mapstructure:"secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	Issuer               string        `mapstructure:"issuer"`
}

// TelegramConfig holds the bot credentials and channel wiring. ChannelID
// is the restricted deputies channel the bot manages invites for;
// FormBaseURL is the public web form the /start reply links to.
type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	ChannelID     int64  `mapstructure:"channel_id"`
	FormBaseURL   string `mapstructure:"form_base_url"`
	UpdateTimeout int    `mapstructure:"update_timeout"`
}

// RelayConfig holds the notification relay settings. ResultWait bounds
// how long an API call blocks waiting for the worker's outcome.
type RelayConfig struct {
	ResultWait   time.Duration `mapstructure:"result_wait"`
	TaskTimeout  time.Duration `mapstructure:"task_timeout"`
	Concurrency  int           `mapstructure:"concurrency"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ReportsConfig holds the PDF rendering settings. MongoURI points at
// the render log store.
type ReportsConfig struct {
	MediaDir string `mapstructure:"media_dir"`
	BaseURL  string `mapstructure:"base_url"`
	FontDir  string `mapstructure:"font_dir"`
	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/deputy-portal/")

	// Set environment variable prefix
	v.SetEnvPrefix("DEPUTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required settings
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "deputy-portal")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", true)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "deputy_portal")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// JWT defaults
	v.SetDefault("jwt.secret", os.Getenv("JWT_SECRET"))
	v.SetDefault("jwt.access_token_duration", time.Hour)
	v.SetDefault("jwt.refresh_token_duration", 30*24*time.Hour)
	v.SetDefault("jwt.issuer", "deputy-portal")

	// Telegram defaults
	v.SetDefault("telegram.token", os.Getenv("TELEGRAM_BOT_TOKEN"))
	v.SetDefault("telegram.channel_id", 0)
	v.SetDefault("telegram.form_base_url", "")
	v.SetDefault("telegram.update_timeout", 60)

	// Relay defaults
	v.SetDefault("relay.result_wait", 30*time.Second)
	v.SetDefault("relay.task_timeout", 25*time.Second)
	v.SetDefault("relay.concurrency", 4)
	v.SetDefault("relay.poll_interval", 200*time.Millisecond)

	// Reports defaults
	v.SetDefault("reports.media_dir", "./media")
	v.SetDefault("reports.base_url", "http://localhost:8080/api/v1/reports")
	v.SetDefault("reports.font_dir", "")
	v.SetDefault("reports.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("reports.mongo_db", "deputy_portal")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Driver != string(DriverMySQL) && c.Database.Driver != string(DriverPostgres) {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case string(DriverMySQL):
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.Name)
	case string(DriverPostgres):
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	default:
		return ""
	}
}

// IsMySQL returns true if MySQL driver is configured.
func (c *DatabaseConfig) IsMySQL() bool {
	return c.Driver == string(DriverMySQL)
}

// IsPostgres returns true if PostgreSQL driver is configured.
func (c *DatabaseConfig) IsPostgres() bool {
	return c.Driver == string(DriverPostgres)
}

// RedisAddr returns the host:port address for the Redis client.
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
