package api

import (
	"net/http"

	"github.com/J-A-Y2/Big-Money/internal/api/handlers"
	"github.com/J-A-Y2/Big-Money/internal/api/middleware"
	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User, authHandler, cfg)
	oauthHandler := handlers.NewOAuthHandler(services.OAuth, services.Auth, authHandler, cfg)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public auth routes
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/{provider}", oauthHandler.Redirect)
			r.Get("/{provider}/callback", oauthHandler.Callback)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Get("/status", authHandler.Status)
				r.Post("/logout", authHandler.Logout)
				r.Post("/check-password", authHandler.CheckPassword)
			})
		})

		r.Route("/users", func(r chi.Router) {
			// Public user routes
			r.Post("/", userHandler.Register)
			r.Get("/email-verify", userHandler.VerifyEmail)

			// Protected user routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Patch("/me", userHandler.Update)
				r.Delete("/me", userHandler.Delete)
			})
		})
	})

	return r
}
