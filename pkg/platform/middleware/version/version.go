// Package version provides middleware for API version extraction.
package version

import (
	"net/http"

	"debatetab/pkg/domain"
	"debatetab/pkg/requestcontext"
)

// ExtractVersion creates middleware that records the API version of a Chi
// subrouter. When using r.Route("/v1", ...), the version is already
// determined by the route match.
//
//	r.Route("/v1", func(v1 chi.Router) {
//	    v1.Use(version.ExtractVersion(domain.APIVersionV1))
//	    // ... routes
//	})
func ExtractVersion(v domain.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithAPIVersion(r.Context(), v)
			w.Header().Set("API-Version", v.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
