package testutil

import (
	"context"
	"net/http"
	"time"

	"debatetab/pkg/requestcontext"
)

// WithAdmin marks the request as coming from an admin, as the admin
// middleware would for a valid X-Admin-Token.
func WithAdmin(req *http.Request) *http.Request {
	ctx := requestcontext.WithRole(req.Context(), requestcontext.RoleAdmin)
	ctx = requestcontext.WithActor(ctx, "admin")
	return req.WithContext(ctx)
}

// WithPublic marks the request as coming from a public caller.
func WithPublic(req *http.Request) *http.Request {
	ctx := requestcontext.WithRole(req.Context(), requestcontext.RolePublic)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// AdminContext returns a background context carrying the admin role, for
// service tests.
func AdminContext() context.Context {
	ctx := requestcontext.WithRole(context.Background(), requestcontext.RoleAdmin)
	return requestcontext.WithActor(ctx, "admin")
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
