package middleware

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

// publicRoutes lists method+path prefixes reachable without a token.
// Published-document reads are anonymous; everything else requires an
// authenticated identity.
var publicRoutes = []struct {
	method string
	prefix string
}{
	{http.MethodGet, "/health"},
	{http.MethodGet, "/api/published/"},
}

// Auth validates the Bearer token on every non-public route and puts
// the resolved identity on the request context. Public routes still get
// the identity attached when a valid token is present, so a reader can
// reach their own unpublished document by slug.
func Auth(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifyRequest(verifier, r)
			if err == nil {
				r = httputil.WithUserID(r, claims.GetUserID())
				r = httputil.WithAdmin(r, claims.IsAdmin())
				next.ServeHTTP(w, r)
				return
			}

			if isPublicRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			httputil.RespondError(w, http.StatusUnauthorized, "invalid or missing token")
		})
	}
}

func verifyRequest(verifier auth.Verifier, r *http.Request) (*models.Claims, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, errors.New("missing bearer token")
	}
	return verifier.VerifyToken(token)
}

func isPublicRoute(r *http.Request) bool {
	for _, route := range publicRoutes {
		if r.Method == route.method && strings.HasPrefix(r.URL.Path, route.prefix) {
			return true
		}
	}
	return false
}
