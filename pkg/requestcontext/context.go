// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	if requestcontext.IsAdmin(ctx) { ... }
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithRole(ctx, requestcontext.RoleAdmin)
package requestcontext

import (
	"context"
	"time"

	"debatetab/pkg/domain"
)

// Role is the caller's access level for visibility decisions.
type Role string

const (
	RolePublic Role = "public"
	RoleAdmin  Role = "admin"
)

// Context key types (unexported for encapsulation).
type (
	roleKey        struct{}
	actorKey       struct{}
	clientIPKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	apiVersionKey  struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyRole        = roleKey{}
	ContextKeyActor       = actorKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyAPIVersion  = apiVersionKey{}
)

// -----------------------------------------------------------------------------
// Caller
// -----------------------------------------------------------------------------

// CallerRole returns the caller's role, defaulting to RolePublic.
func CallerRole(ctx context.Context) Role {
	if role, ok := ctx.Value(ContextKeyRole).(Role); ok && role != "" {
		return role
	}
	return RolePublic
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(ctx context.Context) bool {
	return CallerRole(ctx) == RoleAdmin
}

// WithRole injects the caller's role into the context.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, ContextKeyRole, role)
}

// Actor returns a label for whoever performed the request ("admin", or the
// client IP for public callers). Used by the action log.
func Actor(ctx context.Context) string {
	if actor, ok := ctx.Value(ContextKeyActor).(string); ok {
		return actor
	}
	return ""
}

// WithActor injects the actor label into the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actor)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// WithClientIP injects the client IP into the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ContextKeyClientIP, ip)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// -----------------------------------------------------------------------------
// API version
// -----------------------------------------------------------------------------

// APIVersion returns the API version of the matched route, or the zero value
// outside the versioned API.
func APIVersion(ctx context.Context) domain.APIVersion {
	if v, ok := ctx.Value(ContextKeyAPIVersion).(domain.APIVersion); ok {
		return v
	}
	return ""
}

// WithAPIVersion injects the route's API version into the context.
func WithAPIVersion(ctx context.Context, v domain.APIVersion) context.Context {
	return context.WithValue(ctx, ContextKeyAPIVersion, v)
}
