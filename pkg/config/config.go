package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Archive   ArchiveConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Live      LiveConfig
	Scoring   ScoringConfig
	Export    ExportConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// ArchiveConfig holds archive input configuration
type ArchiveConfig struct {
	Path string
}

// DatabaseConfig holds snapshot store configuration
type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	URL    string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// LiveConfig holds remote data-fetch service configuration
type LiveConfig struct {
	BaseURL     string
	BearerToken string
	PageSize    int
	RPS         float64
	Burst       int
	CacheTTL    time.Duration
}

// ScoringConfig holds network quality score weighting.
// The weights are a policy parameter; defaults reproduce the
// reference scoring curve.
type ScoringConfig struct {
	EngagementCap float64 // max points from engagement rate
	RatioWeight   float64 // points per unit of follower ratio
	RatioCap      float64 // max points from follower ratio
	MutualDivisor float64 // mutual connections per weight step
	MutualWeight  float64 // points per mutual step
	MutualCap     float64 // max points from mutual connections
}

// ExportConfig holds export sink configuration
type ExportConfig struct {
	OutputDir string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("TWEETLENS")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.tweetlens")
	viper.AddConfigPath("/etc/tweetlens")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Archive: ArchiveConfig{
			Path: getString("archive_path", ""),
		},
		Database: DatabaseConfig{
			Driver: getString("database_driver", "sqlite"),
			URL:    getString("database_url", "tweetlens.db"),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
		},
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Live: LiveConfig{
			BaseURL:     getString("live_base_url", "https://api.twitter.com/2"),
			BearerToken: getString("live_bearer_token", ""),
			PageSize:    getInt("live_page_size", 100),
			RPS:         getFloat("live_rps", 2.0),
			Burst:       getInt("live_burst", 10),
			CacheTTL:    GetDuration("live_cache_ttl", 15*time.Minute),
		},
		Scoring: ScoringConfig{
			EngagementCap: getFloat("score_engagement_cap", 50),
			RatioWeight:   getFloat("score_ratio_weight", 20),
			RatioCap:      getFloat("score_ratio_cap", 30),
			MutualDivisor: getFloat("score_mutual_divisor", 10),
			MutualWeight:  getFloat("score_mutual_weight", 20),
			MutualCap:     getFloat("score_mutual_cap", 20),
		},
		Export: ExportConfig{
			OutputDir: getString("export_dir", "exports"),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "tweetlens"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("database_driver", "sqlite")
	viper.SetDefault("database_url", "tweetlens.db")
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("live_base_url", "https://api.twitter.com/2")
	viper.SetDefault("live_page_size", 100)
	viper.SetDefault("export_dir", "exports")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "tweetlens")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("TWEETLENS_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("TWEETLENS_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	if val := os.Getenv("TWEETLENS_" + toEnvKey(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("TWEETLENS_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	// Convert snake_case to UPPER_SNAKE_CASE
	result := ""
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += "_"
		}
		if r == '-' || r == '_' {
			result += "_"
		} else {
			result += string(r)
		}
	}
	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database_driver must be sqlite or postgres")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.Live.PageSize <= 0 || c.Live.PageSize > 1000 {
		return fmt.Errorf("live_page_size must be between 1 and 1000")
	}
	if c.Scoring.EngagementCap < 0 || c.Scoring.RatioCap < 0 || c.Scoring.MutualCap < 0 {
		return fmt.Errorf("scoring caps must be non-negative")
	}
	if c.Scoring.MutualDivisor <= 0 {
		return fmt.Errorf("score_mutual_divisor must be positive")
	}
	return nil
}

// GetDuration returns a duration from config key, with default
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultValue
}
