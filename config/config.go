package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// Proxy addresses or CIDRs whose X-Forwarded-For is trusted for the client IP.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Booking store. One of "mongo", "firestore" or "memory".
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisTrackingDB      int    `mapstructure:"REDIS_TRACKING_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Firebase configuration.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Auth. AUTH_MODE is "firebase" (ID tokens) or "jwt" (HS256 with JWT_SECRET).
	AuthMode  string `mapstructure:"AUTH_MODE"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Reservation tuning.
	ReservationMaxAttempts    int    `mapstructure:"RESERVATION_MAX_ATTEMPTS"`
	ReservationRetryBackoffMs int    `mapstructure:"RESERVATION_RETRY_BACKOFF_MS"`
	ReminderLeadMinutes       int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	SessionTimezone           string `mapstructure:"SESSION_TIMEZONE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TRUSTED_PROXIES", []string{})
	viper.SetDefault("STORE_BACKEND", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "mindwell")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_TRACKING_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("AUTH_MODE", "firebase")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RESERVATION_MAX_ATTEMPTS", 3)
	viper.SetDefault("RESERVATION_RETRY_BACKOFF_MS", 150)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("SESSION_TIMEZONE", "Local")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// RetryBackoff is the base delay between reservation attempts.
func (c Config) RetryBackoff() time.Duration {
	return time.Duration(c.ReservationRetryBackoffMs) * time.Millisecond
}

// ReminderLead is how long before a session its reminder fires.
func (c Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadMinutes) * time.Minute
}

// Location resolves SESSION_TIMEZONE, falling back to the local zone.
func (c Config) Location() *time.Location {
	if c.SessionTimezone == "" || c.SessionTimezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.SessionTimezone)
	if err != nil {
		log.Printf("Unknown SESSION_TIMEZONE %q, using local time", c.SessionTimezone)
		return time.Local
	}
	return loc
}
