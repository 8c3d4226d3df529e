package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"debatetab/internal/ratelimit/models"
)

const redisKeyPrefix = "debatetab:ratelimit:"

// slidingWindowScript trims the sorted set to the trailing window, then adds
// the request when there is room. Scores are unix milliseconds. Returns
// {allowed, count, oldest score}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  redis.call('PEXPIRE', key, window)
  count = count + 1
  allowed = 1
end
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local first = now
if oldest[2] then first = tonumber(oldest[2]) end
return {allowed, count, first}
`)

// RedisStore shares sliding windows between replicas through Redis sorted
// sets.
type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	now := s.now()
	res, err := slidingWindowScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + key},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	resetAt := time.UnixMilli(res[2]).Add(window)
	if res[0] == 0 {
		return &models.Result{Allowed: false, Limit: limit, ResetAt: resetAt}, nil
	}
	return &models.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(res[1]),
		ResetAt:   resetAt,
	}, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset rate limit: %w", err)
	}
	return nil
}
