package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all runtime settings for user-service. It is populated from
// the process environment exactly once at startup and injected into each
// component; nothing re-reads the environment per request.
//
// HashSecret keys the password hashing scheme, JWTSecret signs bearer
// tokens. Rotating the former invalidates all stored password hashes,
// rotating the latter invalidates all outstanding tokens.
type Config struct {
	HTTPAddr     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPass       string
	DBName       string
	RedisAddr    string
	KafkaBrokers []string
	HashSecret   string
	JWTSecret    string
	TokenTTL     time.Duration
}

// Load reads configuration from the environment. A missing HASH_SECRET or
// JWT_SECRET is a fatal startup condition, not a runtime error.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBName:       getEnv("DB_NAME", "user-db"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092,localhost:9093,localhost:9094"), ","),
		HashSecret:   os.Getenv("HASH_SECRET"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}

	if cfg.HashSecret == "" {
		return nil, errors.New("HASH_SECRET not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	// Tokens carry no expiry unless a TTL is configured.
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
