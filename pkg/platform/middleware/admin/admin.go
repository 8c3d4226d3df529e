package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"debatetab/pkg/requestcontext"
)

// HeaderName carries the static admin token.
const HeaderName = "X-Admin-Token"

// ResolveRole marks the request as admin when the X-Admin-Token header
// matches expectedToken. Requests without a matching token continue as
// public callers; routes that need the admin role add RequireAdmin.
// An empty expectedToken disables the admin role entirely.
func ResolveRole(expectedToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := r.Header.Get(HeaderName)
			if expectedToken != "" && token != "" &&
				subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) == 1 {
				ctx = requestcontext.WithRole(ctx, requestcontext.RoleAdmin)
				ctx = requestcontext.WithActor(ctx, "admin")
			} else {
				ctx = requestcontext.WithRole(ctx, requestcontext.RolePublic)
				ctx = requestcontext.WithActor(ctx, requestcontext.ClientIP(ctx))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.IsAdmin(ctx) {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
