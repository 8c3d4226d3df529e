package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"debatetab/internal/ratelimit/models"
	"debatetab/internal/ratelimit/store/bucket"
	"debatetab/pkg/platform/middleware/metadata"
	"debatetab/pkg/testutil"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("redis unavailable")
}

type countingRecorder struct{ scopes []string }

func (c *countingRecorder) IncrementRateLimited(scope string) { c.scopes = append(c.scopes, scope) }

type RateLimitSuite struct {
	suite.Suite
	recorder *countingRecorder
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitSuite))
}

func (s *RateLimitSuite) SetupTest() {
	s.recorder = &countingRecorder{}
}

func (s *RateLimitSuite) handler(m *Middleware) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	return metadata.ClientMetadata(m.PerIP("registration")(ok))
}

func (s *RateLimitSuite) post(ip string) *http.Request {
	req := testutil.NewRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/team")
	req.Header.Set("X-Forwarded-For", ip)
	return req
}

func (s *RateLimitSuite) TestPerIP() {
	m := New(bucket.NewInMemoryStore(), 2, time.Minute, WithMetrics(s.recorder))
	h := s.handler(m)

	for i := range 2 {
		rr := testutil.DoRequest(h, s.post("203.0.113.7"))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.Equal("2", rr.Header().Get("X-RateLimit-Limit"))
		s.Equal(strconv.Itoa(1-i), rr.Header().Get("X-RateLimit-Remaining"))
	}

	rr := testutil.DoRequest(h, s.post("203.0.113.7"))
	testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)
	s.NotEmpty(rr.Header().Get("Retry-After"))
	body := testutil.UnmarshalResponse[models.ExceededResponse](s.T(), rr)
	s.Equal("rate_limit_exceeded", body.Error)
	s.Positive(body.RetryAfter)
	s.Equal([]string{"registration"}, s.recorder.scopes)

	other := testutil.DoRequest(h, s.post("198.51.100.1"))
	testutil.AssertStatus(s.T(), other, http.StatusCreated)
}

func (s *RateLimitSuite) TestDisabledAndFailOpen() {
	s.Run("zero limit passes through", func() {
		h := s.handler(New(failingLimiter{}, 0, time.Minute))
		rr := testutil.DoRequest(h, s.post("203.0.113.7"))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.Empty(rr.Header().Get("X-RateLimit-Limit"))
	})

	s.Run("limiter failure lets the request through", func() {
		h := s.handler(New(failingLimiter{}, 5, time.Minute, WithMetrics(s.recorder)))
		rr := testutil.DoRequest(h, s.post("203.0.113.7"))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.Empty(s.recorder.scopes)
	})
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	r := &models.Result{ResetAt: now.Add(42 * time.Second)}
	assert.Equal(t, 42, r.RetryAfter(now))

	past := &models.Result{ResetAt: now.Add(-time.Second)}
	assert.Equal(t, 1, past.RetryAfter(now))
}
