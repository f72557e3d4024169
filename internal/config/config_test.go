package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/booking.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/booking.db", cfg.DB.Path)
	assert.Equal(t, "booking.slot_booked", cfg.SlotBookedQueue)
	assert.Equal(t, 3*time.Second, cfg.PublishTimeout)
	assert.Equal(t, 16, cfg.SubscriberBuffer)
	assert.True(t, cfg.Cache.AllowsMethod("get"))
	assert.False(t, cfg.Cache.AllowsMethod("POST"))
}

func TestLoadRateLimitOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.TTL, "ttl is raised to five refill intervals")
	assert.InDelta(t, 0.5, cfg.RateLimit.PerSecond(), 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		db      DBConfig
		wantErr string
	}{
		{name: "sqlite ok", db: DBConfig{Driver: "sqlite", Path: "x.db"}},
		{name: "mysql ok", db: DBConfig{Driver: "mysql", User: "u", Host: "h", Port: "3306", Name: "n"}},
		{name: "mysql missing", db: DBConfig{Driver: "mysql", Host: "h", Name: "n"}, wantErr: "DB_USER, DB_PORT"},
		{name: "postgres missing", db: DBConfig{Driver: "postgres", User: "u", Host: "h", Name: "n"}, wantErr: "DB_PORT"},
		{name: "unknown driver", db: DBConfig{Driver: "oracle"}, wantErr: "unsupported DB_DRIVER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{DB: tt.db}.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Addr: "x:1", Host: "cache", Port: "6380"}.Address())
	assert.Equal(t, "x:1", RedisConfig{Addr: "x:1"}.Address())
	assert.Equal(t, "localhost:6379", RedisConfig{}.Address())
	assert.Nil(t, NewRedisClient(RedisConfig{Enabled: false}))
}
