package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/lukmanhakim/user-portal/internal/auth"
	"github.com/lukmanhakim/user-portal/internal/transport/middleware"
	"github.com/lukmanhakim/user-portal/internal/transport/swagger"
	"github.com/lukmanhakim/user-portal/internal/user"
)

// RegisterAllRoutes wires the HTTP surface. The request authorizer runs
// globally; the permitted-without-auth set below is exactly the static
// allow-list (login, register, password reset, public images, health).
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	codec *auth.TokenCodec,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	authz := auth.NewRBACAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(auth.RequestAuthorizer(codec, logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/user", func(r chi.Router) {
		// Public allow-list.
		r.Post("/login", authHandler.Login)
		r.Post("/register", userHandler.Register)
		r.Get("/reset-password/{email}", userHandler.ResetPassword)
		r.Get("/image/{username}/{filename}", userHandler.ProfileImage)
		r.Get("/image/profile/{username}", userHandler.TemporaryProfileImage)

		// Everything below requires an established identity; the heavier
		// operations additionally require a role-derived authority.
		r.Group(func(pr chi.Router) {
			pr.Use(authz.RequireAuthenticated())
			pr.Get("/find/{username}", userHandler.Find)
			pr.Get("/list", userHandler.List)
			pr.Post("/update-profile-image", userHandler.UpdateProfileImage)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authz.RequireAuthority(auth.AuthorityUserCreate))
			pr.Post("/add", userHandler.Add)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authz.RequireAuthority(auth.AuthorityUserUpdate))
			pr.Post("/update", userHandler.Update)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authz.RequireAuthority(auth.AuthorityUserDelete))
			pr.Delete("/delete/{id}", userHandler.Delete)
		})
	})
}
