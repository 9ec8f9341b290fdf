package auth

import (
	"log/slog"
	"net/http"

	"github.com/lukmanhakim/user-portal/internal"
	"github.com/lukmanhakim/user-portal/internal/transport"
)

const accessDeniedMessage = "You do not have permission to access this resource"

// RBACAuthorization guards routes after the request authorizer has run:
// missing identity is a 401, present identity without the required authority
// is a 403 with a fixed reason phrase.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := internal.IdentityFromContext(r.Context()); !ok {
				ra.logger.Warn("unauthenticated access to protected resource", "path", r.URL.Path)
				transport.WriteErrorResponse(w, ra.logger, http.StatusUnauthorized, "You need to log in to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAuthority(authority string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				ra.logger.Warn("unauthenticated access to protected resource", "path", r.URL.Path)
				transport.WriteErrorResponse(w, ra.logger, http.StatusUnauthorized, "You need to log in to access this resource")
				return
			}

			if !id.HasAuthority(authority) {
				ra.logger.Warn("access denied: missing authority",
					"username", id.Username,
					"required_authority", authority,
					"authorities", id.Authorities)
				transport.WriteErrorResponse(w, ra.logger, http.StatusForbidden, accessDeniedMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
