package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := fromLookup(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, defaultActionLogTopic, cfg.Kafka.ActionLogTopic)
	assert.Equal(t, defaultPreferencesCacheTTL, cfg.PreferencesCacheTTL)
	assert.Empty(t, cfg.Server.TrustedOrigins)
	assert.Equal(t, 20, cfg.RateLimit.Registrations)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := fromLookup(lookup(map[string]string{
		"PORT":                    "52219",
		"TRUSTED_ORIGINS":         "https://tab.example.org, https://admin.example.org",
		"DATABASE_DRIVER":         "pgx",
		"KAFKA_BROKERS":           "k1:9092,k2:9092",
		"PREFERENCES_CACHE_TTL":   "30s",
		"REDIS_POOL_SIZE":         "4",
		"REGISTRATION_RATE_LIMIT": "0",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":52219", cfg.Server.Addr)
	assert.Equal(t, []string{
		"https://tab.example.org",
		"https://admin.example.org",
		"http://localhost:52219",
		"http://127.0.0.1:52219",
	}, cfg.Server.TrustedOrigins)
	assert.Equal(t, DriverPgx, cfg.Database.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.PreferencesCacheTTL)
	assert.Equal(t, 4, cfg.Redis.PoolSize)
	assert.Zero(t, cfg.RateLimit.Registrations)
}

func TestFromLookupRejectsBadValues(t *testing.T) {
	_, err := fromLookup(lookup(map[string]string{"DATABASE_DRIVER": "sqlite"}))
	assert.Error(t, err)

	_, err = fromLookup(lookup(map[string]string{"PREFERENCES_CACHE_TTL": "soon"}))
	assert.Error(t, err)

	_, err = fromLookup(lookup(map[string]string{"REGISTRATION_RATE_LIMIT": "many"}))
	assert.Error(t, err)
}
