package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/lukmanhakim/user-portal/internal"
)

// RequestAuthorizer is the per-request filter. It establishes identity purely
// from the token's own signature and expiry; it never consults the user store
// or the attempt cache. Requests without a usable Authorization header pass
// through unauthenticated and downstream authorization decides whether the
// resource needed one.
func RequestAuthorizer(codec *TokenCodec, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Pre-flight requests are answered OK without touching auth.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, TokenPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(header, TokenPrefix)

			subject, err := codec.Subject(tokenString)
			_, alreadyBound := internal.IdentityFromContext(r.Context())

			if err == nil && !alreadyBound && codec.IsValid(subject, tokenString) {
				authorities, authErr := codec.Authorities(tokenString)
				if authErr == nil {
					ctx := internal.ContextWithIdentity(r.Context(), &internal.Identity{
						Username:    subject,
						Authorities: authorities,
					})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				err = authErr
			}

			if err != nil {
				logger.Debug("request carries unusable token", "error", err, "path", r.URL.Path)
			}

			// Defensive reset: whatever was bound so far is dropped and the
			// request continues unauthenticated.
			next.ServeHTTP(w, r.WithContext(internal.ContextWithoutIdentity(r.Context())))
		})
	}
}
