package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"debatetab/internal/ratelimit/models"
	"debatetab/pkg/platform/httputil"
	"debatetab/pkg/platform/middleware/metadata"
	"debatetab/pkg/requestcontext"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// Recorder counts rejected requests.
type Recorder interface {
	IncrementRateLimited(scope string)
}

type Middleware struct {
	limiter Limiter
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics Recorder
	now     func() time.Time
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func WithMetrics(r Recorder) Option {
	return func(m *Middleware) {
		m.metrics = r
	}
}

// New limits each client IP to limit requests per window. A limit of zero
// or less turns the middleware into a pass-through.
func New(limiter Limiter, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limit <= 0 {
		m.logger.Info("registration rate limiting disabled")
	}
	return m
}

// PerIP rejects requests beyond the limit with 429. Scope separates the
// counters of unrelated route groups. Limiter failures let the request
// through.
func (m *Middleware) PerIP(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			if ip == "" {
				ip = metadata.ClientIPFromRequest(r)
			}

			result, err := m.limiter.Allow(ctx, scope+":"+ip, m.limit, m.window)
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to check rate limit", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			addHeaders(w, result)
			if !result.Allowed {
				m.logger.WarnContext(ctx, "rate limit exceeded",
					"scope", scope,
					"client_ip", ip,
					"request_id", requestcontext.RequestID(ctx),
				)
				if m.metrics != nil {
					m.metrics.IncrementRateLimited(scope)
				}
				m.writeExceeded(w, result)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func (m *Middleware) writeExceeded(w http.ResponseWriter, result *models.Result) {
	retry := result.RetryAfter(m.now())
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many registrations from this address. Please try again later.",
		RetryAfter: retry,
	})
}
