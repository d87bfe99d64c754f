package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Weather   WeatherConfig   `yaml:"weather"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	QR        QRConfig        `yaml:"qr"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	ShutdownSeconds     int    `yaml:"shutdown_timeout_seconds"`
}

// GRPCConfig contains the health/reflection listener. Port 0 means server.port+1.
type GRPCConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

// JWTConfig contains bearer token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	Issuer             string `yaml:"issuer"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// WeatherConfig contains the weather provider and cache settings
type WeatherConfig struct {
	BaseURL         string `yaml:"base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

// PricingConfig contains dynamic pricing settings
type PricingConfig struct {
	Timezone         string  `yaml:"timezone"`
	DefaultLat       float64 `yaml:"default_lat"`
	DefaultLng       float64 `yaml:"default_lng"`
	ValidMinutes     int     `yaml:"valid_minutes"`
	EarningsTimezone string  `yaml:"earnings_timezone"`
}

// KafkaConfig contains rental event publishing settings
type KafkaConfig struct {
	Enabled             bool     `yaml:"enabled"`
	Brokers             []string `yaml:"brokers"`
	Topic               string   `yaml:"topic"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

// SchedulerConfig contains cron schedule settings (with seconds, UTC)
type SchedulerConfig struct {
	ReconcileUmbrellas string `yaml:"reconcile_umbrellas"`
	PruneWeatherCache  string `yaml:"prune_weather_cache"`
}

// QRConfig contains QR short link settings
type QRConfig struct {
	ShortlinkBase string `yaml:"shortlink_base"`
}

// Load reads configuration from a YAML file. A .env file next to the working
// directory is loaded first; its values never override the real environment.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	envString("SERVER_HOST", &c.Server.Host)
	envInt("SERVER_PORT", &c.Server.Port)
	envInt("GRPC_PORT", &c.GRPC.Port)

	// Database
	envString("DB_HOST", &c.Database.Host)
	envInt("DB_PORT", &c.Database.Port)
	envString("DB_USER", &c.Database.User)
	envString("DB_PASSWORD", &c.Database.Password)
	envString("DB_NAME", &c.Database.Database)
	envString("DB_SSL_MODE", &c.Database.SSLMode)
	if val := os.Getenv("DB_AUTO_MIGRATE"); val != "" {
		c.Database.AutoMigrate, _ = strconv.ParseBool(val)
	}

	// JWT
	envString("JWT_SECRET", &c.JWT.Secret)
	envString("JWT_ISSUER", &c.JWT.Issuer)

	// Log
	envString("LOG_LEVEL", &c.Log.Level)
	envString("LOG_FORMAT", &c.Log.Format)

	// Weather / pricing
	envString("WEATHER_BASE_URL", &c.Weather.BaseURL)
	envString("PRICING_TZ", &c.Pricing.Timezone)

	// Kafka
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		c.Kafka.Brokers = strings.Split(val, ",")
		c.Kafka.Enabled = true
	}
	envString("KAFKA_TOPIC", &c.Kafka.Topic)

	// QR
	envString("SHORTLINK_BASE", &c.QR.ShortlinkBase)
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.GRPC.Port == 0 {
		c.GRPC.Port = c.Server.Port + 1
	}
	if c.GRPC.Port < 0 || c.GRPC.Port > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.GRPC.Port)
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}
	if c.Server.ShutdownSeconds == 0 {
		c.Server.ShutdownSeconds = 10
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Weather.TimeoutSeconds == 0 {
		c.Weather.TimeoutSeconds = 8
	}
	if c.Weather.CacheTTLMinutes == 0 {
		c.Weather.CacheTTLMinutes = 10
	}

	if c.Pricing.Timezone == "" {
		c.Pricing.Timezone = "Asia/Colombo"
	}
	if _, err := time.LoadLocation(c.Pricing.Timezone); err != nil {
		return fmt.Errorf("invalid pricing timezone %q: %w", c.Pricing.Timezone, err)
	}
	if c.Pricing.EarningsTimezone == "" {
		c.Pricing.EarningsTimezone = "UTC"
	}
	if c.Pricing.DefaultLat == 0 && c.Pricing.DefaultLng == 0 {
		c.Pricing.DefaultLat = 6.9271
		c.Pricing.DefaultLng = 79.8612
	}
	if c.Pricing.ValidMinutes == 0 {
		c.Pricing.ValidMinutes = 10
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "rental-events"
	}
	if c.Kafka.WriteTimeoutSeconds == 0 {
		c.Kafka.WriteTimeoutSeconds = 5
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}

	if c.Scheduler.ReconcileUmbrellas == "" {
		c.Scheduler.ReconcileUmbrellas = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PruneWeatherCache == "" {
		c.Scheduler.PruneWeatherCache = "0 */15 * * * *"
	}

	if c.QR.ShortlinkBase == "" {
		c.QR.ShortlinkBase = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC health server address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.GRPC.Port)
}

func (c *Config) PricingLocation() *time.Location {
	loc, err := time.LoadLocation(c.Pricing.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) WeatherTimeout() time.Duration {
	return time.Duration(c.Weather.TimeoutSeconds) * time.Second
}

func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.Weather.CacheTTLMinutes) * time.Minute
}
