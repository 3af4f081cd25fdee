package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Matching     MatchingConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret string
}

// AgeBucket bounds the acceptable counterpart age relative to the profile's own
// age: counterpartAge - ownAge must fall in [MinDelta, MaxDelta]. Unbounded
// buckets set Any.
type AgeBucket struct {
	Any      bool
	MinDelta int
	MaxDelta int
}

// MatchingConfig is the tunable policy table for the matching pass and session
// lifecycle. Bucket boundaries and score weights are policy, not contract.
type MatchingConfig struct {
	SessionTTL     time.Duration
	InterestWeight float64
	AgeWeight      float64
	MessageCap     int
	SweepInterval  time.Duration
	RunLockTTL     time.Duration
	AgeBuckets     map[string]AgeBucket
}

type LoggingConfig struct {
	Level  string
	Format string
}

// DefaultAgeBuckets returns the built-in age-preference categories. Unknown
// categories fall back to "any" at scoring time.
func DefaultAgeBuckets() map[string]AgeBucket {
	return map[string]AgeBucket{
		"any":     {Any: true},
		"similar": {MinDelta: -2, MaxDelta: 2},
		"close":   {MinDelta: -5, MaxDelta: 5},
		"older":   {MinDelta: 1, MaxDelta: 10},
		"younger": {MinDelta: -10, MaxDelta: -1},
	}
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("MATCH_INTEREST_WEIGHT", 10.0)
	viper.SetDefault("MATCH_AGE_WEIGHT", 5.0)
	viper.SetDefault("MESSAGE_CAP", 100)
	viper.SetDefault("EXPIRY_SWEEP_INTERVAL_SEC", 60)
	viper.SetDefault("MATCH_RUN_LOCK_TTL_SEC", 300)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret: viper.GetString("JWT_ACCESS_SECRET"),
		},
		Matching: MatchingConfig{
			SessionTTL:     time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			InterestWeight: viper.GetFloat64("MATCH_INTEREST_WEIGHT"),
			AgeWeight:      viper.GetFloat64("MATCH_AGE_WEIGHT"),
			MessageCap:     viper.GetInt("MESSAGE_CAP"),
			SweepInterval:  time.Duration(viper.GetInt("EXPIRY_SWEEP_INTERVAL_SEC")) * time.Second,
			RunLockTTL:     time.Duration(viper.GetInt("MATCH_RUN_LOCK_TTL_SEC")) * time.Second,
			AgeBuckets:     DefaultAgeBuckets(),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Matching.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	if c.Matching.MessageCap <= 0 {
		return fmt.Errorf("message cap must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
