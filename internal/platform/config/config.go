package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Release information reported by the API root.
const (
	Version     = "0.9.0"
	VersionName = "Kookaburra"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	AdminToken     string
	TrustedOrigins []string
	TimeZone       string
}

// DatabaseConfig selects the persistence backend. An empty URL keeps every
// store in memory.
type DatabaseConfig struct {
	URL             string
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the preferences cache. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures action-log publication. No brokers disables Kafka.
type KafkaConfig struct {
	Brokers           []string
	ActionLogTopic    string
	Partitions        int32
	ReplicationFactor int16
}

// RateLimitConfig bounds public registration submissions per client IP. A
// zero limit disables it.
type RateLimitConfig struct {
	Registrations int
	Window        time.Duration
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Config is the full process configuration.
type Config struct {
	Server              Server
	Database            DatabaseConfig
	Redis               RedisConfig
	Kafka               KafkaConfig
	Logging             LoggingConfig
	RateLimit           RateLimitConfig
	PreferencesCacheTTL time.Duration
}

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Default values used when the environment leaves a setting unset.
const (
	defaultPort                = "8000"
	defaultTimeZone            = "Australia/Melbourne"
	defaultActionLogTopic      = "debatetab.actionlog"
	defaultPreferencesCacheTTL = 5 * time.Minute
)

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Config, error) {
	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	addr := getenv("DEBATETAB_ADDR")
	if addr == "" {
		addr = ":" + port
	}

	cfg := Config{
		Server: Server{
			Addr:           addr,
			AdminToken:     getenv("ADMIN_TOKEN"),
			TrustedOrigins: trustedOrigins(getenv("TRUSTED_ORIGINS"), getenv("PORT")),
			TimeZone:       orDefault(getenv("TIME_ZONE"), defaultTimeZone),
		},
		Database: DatabaseConfig{
			URL:    getenv("DATABASE_URL"),
			Driver: orDefault(getenv("DATABASE_DRIVER"), DriverPostgres),
		},
		Redis: RedisConfig{
			URL: getenv("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers:        splitList(getenv("KAFKA_BROKERS")),
			ActionLogTopic: orDefault(getenv("ACTIONLOG_TOPIC"), defaultActionLogTopic),
		},
		Logging: LoggingConfig{
			Level:  orDefault(getenv("LOG_LEVEL"), "info"),
			Format: orDefault(getenv("LOG_FORMAT"), "json"),
		},
	}

	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverPgx {
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}

	var err error
	if cfg.Database.MaxOpenConns, err = intOr(getenv, "DATABASE_MAX_OPEN_CONNS", 20); err != nil {
		return Config{}, err
	}
	if cfg.Database.MaxIdleConns, err = intOr(getenv, "DATABASE_MAX_IDLE_CONNS", 5); err != nil {
		return Config{}, err
	}
	if cfg.Database.ConnMaxLifetime, err = durationOr(getenv, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Redis.PoolSize, err = intOr(getenv, "REDIS_POOL_SIZE", 10); err != nil {
		return Config{}, err
	}
	if cfg.Redis.MinIdleConns, err = intOr(getenv, "REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Config{}, err
	}
	if cfg.Redis.DialTimeout, err = durationOr(getenv, "REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationOr(getenv, "REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationOr(getenv, "REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	partitions, err := intOr(getenv, "ACTIONLOG_PARTITIONS", 1)
	if err != nil {
		return Config{}, err
	}
	replication, err := intOr(getenv, "ACTIONLOG_REPLICATION_FACTOR", 1)
	if err != nil {
		return Config{}, err
	}
	cfg.Kafka.Partitions = int32(partitions)
	cfg.Kafka.ReplicationFactor = int16(replication)
	if cfg.PreferencesCacheTTL, err = durationOr(getenv, "PREFERENCES_CACHE_TTL", defaultPreferencesCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit.Registrations, err = intOr(getenv, "REGISTRATION_RATE_LIMIT", 20); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit.Window, err = durationOr(getenv, "REGISTRATION_RATE_WINDOW", time.Minute); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// trustedOrigins parses TRUSTED_ORIGINS and, when PORT is set, adds the
// localhost origins for that port so a container mapped to a custom port
// still accepts its own forms.
func trustedOrigins(raw, port string) []string {
	origins := splitList(raw)
	if port != "" {
		origins = append(origins,
			"http://localhost:"+port,
			"http://127.0.0.1:"+port,
		)
	}
	return origins
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
