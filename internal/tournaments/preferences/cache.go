// Package preferences serves tournament preferences through a Redis
// cache-aside layer in front of the tournament store.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
)

const keyPrefix = "debatetab:prefs:"

// Source is the durable preferences store.
type Source interface {
	LoadPreferences(ctx context.Context, tournamentID domain.TournamentID) (models.Preferences, error)
	SavePreferences(ctx context.Context, tournamentID domain.TournamentID, prefs models.Preferences) error
}

// Cache reads through Redis and invalidates on write. With a nil client it
// is a plain pass-through to the source. Redis errors are logged and the
// source is used instead; the cache never fails a request on its own.
type Cache struct {
	source Source
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func New(source Source, client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{source: source, client: client, ttl: 5 * time.Minute, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func key(tournamentID domain.TournamentID) string {
	return keyPrefix + strconv.FormatInt(int64(tournamentID), 10)
}

func (c *Cache) LoadPreferences(ctx context.Context, tournamentID domain.TournamentID) (models.Preferences, error) {
	if c.client == nil {
		return c.source.LoadPreferences(ctx, tournamentID)
	}

	raw, err := c.client.Get(ctx, key(tournamentID)).Bytes()
	switch {
	case err == nil:
		prefs := models.DefaultPreferences()
		if jsonErr := json.Unmarshal(raw, &prefs); jsonErr == nil {
			prefs.Normalize()
			return prefs, nil
		}
		c.logger.WarnContext(ctx, "discarding unreadable cached preferences", "tournament_id", int64(tournamentID))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WarnContext(ctx, "preferences cache read failed", "tournament_id", int64(tournamentID), "error", err)
	}

	prefs, err := c.source.LoadPreferences(ctx, tournamentID)
	if err != nil {
		return models.Preferences{}, err
	}
	if data, err := json.Marshal(prefs); err == nil {
		if err := c.client.Set(ctx, key(tournamentID), data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "preferences cache write failed", "tournament_id", int64(tournamentID), "error", err)
		}
	}
	return prefs, nil
}

func (c *Cache) SavePreferences(ctx context.Context, tournamentID domain.TournamentID, prefs models.Preferences) error {
	if err := c.source.SavePreferences(ctx, tournamentID, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	if c.client != nil {
		if err := c.client.Del(ctx, key(tournamentID)).Err(); err != nil {
			c.logger.WarnContext(ctx, "preferences cache invalidation failed", "tournament_id", int64(tournamentID), "error", err)
		}
	}
	return nil
}
