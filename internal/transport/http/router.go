package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skillswap_22520060/internal/handler"
	"skillswap_22520060/internal/httputil"
	authmw "skillswap_22520060/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	SwapHandler         *handler.SwapHandler
	MessageHandler      *handler.MessageHandler
	ReviewHandler       *handler.ReviewHandler
	ReportHandler       *handler.ReportHandler
	NotificationHandler *handler.NotificationHandler
	AdminHandler        *handler.AdminHandler

	JWTSecret string
	Users     authmw.UserResolver
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	auth := authmw.Auth(cfg.JWTSecret, cfg.Users)

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Put("/reset-password/{token}", cfg.AuthHandler.ResetPassword)

		// Own profile requires a resolved identity
		r.With(auth).Get("/profile", cfg.AuthHandler.GetProfile)
		r.With(auth).Put("/profile", cfg.AuthHandler.UpdateProfile)
	})

	// Skill search and review listings are public
	r.Get("/users/search", cfg.UserHandler.Search)
	r.Get("/reviews/user/{userId}", cfg.ReviewHandler.ListByUser)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Route("/swap-requests", func(r chi.Router) {
			r.Post("/", cfg.SwapHandler.Send)
			r.Get("/", cfg.SwapHandler.List)
			r.Patch("/{id}/accept", cfg.SwapHandler.Accept)
			r.Patch("/{id}/reject", cfg.SwapHandler.Reject)
			r.Patch("/{id}/complete", cfg.SwapHandler.Complete)
			r.Patch("/{id}/cancel", cfg.SwapHandler.Cancel)
		})

		r.Post("/messages", cfg.MessageHandler.Send)
		r.Get("/messages/{swapRequestId}", cfg.MessageHandler.List)

		r.Post("/reviews", cfg.ReviewHandler.Create)

		r.Post("/reports/user", cfg.ReportHandler.FileUserReport)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.NotificationHandler.List)
			r.Patch("/read-all", cfg.NotificationHandler.MarkAllRead)
			r.Patch("/{id}/read", cfg.NotificationHandler.MarkRead)
		})

		// Moderation endpoints, admin role required
		r.Route("/admin", func(r chi.Router) {
			r.Use(authmw.AdminOnly)

			r.Get("/users", cfg.AdminHandler.ListUsers)
			r.Patch("/users/{id}/block", cfg.AdminHandler.BlockUser)
			r.Patch("/users/{id}/unblock", cfg.AdminHandler.UnblockUser)

			r.Get("/reports", cfg.AdminHandler.ListReports)
			r.Patch("/reports/{reportId}/action", cfg.AdminHandler.ReportAction)
		})
	})

	return r
}
