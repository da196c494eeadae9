package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())

	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Contains(t, cfg.Database.DSN, "dbname=ticketing_db")
	assert.Contains(t, cfg.Database.DSN, "sslmode=disable")

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)

	assert.Equal(t, "seat-locks", cfg.Locks.Table)
	assert.Equal(t, 5*time.Minute, cfg.Locks.TTL)
	assert.Equal(t, 5*time.Second, cfg.Locks.OperationTimeout)
	assert.Equal(t, time.Minute, cfg.Locks.ReapInterval)
	assert.Equal(t, int64(100), cfg.Locks.ReapScanCount)

	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "cache-invalidation", cfg.Kafka.Topic)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.WindowDuration)
	assert.Equal(t, 20, cfg.RateLimit.BookingRequests)
	assert.Empty(t, cfg.RateLimit.WhitelistedIPs)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOCK_TABLE", "holds")
	t.Setenv("LOCK_TTL_MS", "15000")
	t.Setenv("REGISTRY_TIMEOUT", "2s")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("RATE_LIMIT_WHITELISTED_IPS", "10.0.0.1,10.0.0.2")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "holds", cfg.Locks.Table)
	assert.Equal(t, 15*time.Second, cfg.Locks.TTL)
	assert.Equal(t, 2*time.Second, cfg.Locks.OperationTimeout)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.WhitelistedIPs)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("LOCK_TTL_MS", "five minutes")
	t.Setenv("RATE_LIMIT_ENABLED", "yes please")

	cfg := Load()

	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Locks.TTL)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestCacheEnvAliases(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)

	// CACHE_* wins over the REDIS_* alias
	t.Setenv("CACHE_HOST", "cache.internal")
	cfg = Load()
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr)
}

func TestGinModeHelpers(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
