package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/lukmanhakim/user-portal/internal/transport"
)

// Recovery converts panics into a 500 with the standard error body. Stack
// traces go to the log only, never to the client.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					transport.WriteErrorResponse(w, logger, http.StatusInternalServerError,
						"An error occurred while processing the request")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
