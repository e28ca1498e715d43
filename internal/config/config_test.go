package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HASH_SECRET", "hash-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "root:@tcp(127.0.0.1:3306)/user-db", cfg.DSN())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Len(t, cfg.KafkaBrokers, 3)
	assert.Zero(t, cfg.TokenTTL)
}

func TestLoad_MissingHashSecret(t *testing.T) {
	t.Setenv("HASH_SECRET", "")
	t.Setenv("JWT_SECRET", "jwt-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("HASH_SECRET", "hash-secret")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TokenTTL(t *testing.T) {
	t.Setenv("HASH_SECRET", "hash-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("TOKEN_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	t.Setenv("HASH_SECRET", "hash-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HASH_SECRET", "hash-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASS", "hunter2")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "root:hunter2@tcp(db.internal:3306)/user-db", cfg.DSN())
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
}
