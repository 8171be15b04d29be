package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vidtube/internal/handler"
	"vidtube/internal/httputil"
	"vidtube/internal/service"
	authmw "vidtube/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	VideoHandler        *handler.VideoHandler
	SubscriptionHandler *handler.SubscriptionHandler
	Tokens              *service.TokenService
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, "OK")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public session endpoints
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh-token", cfg.AuthHandler.Refresh)

			// Protected account endpoints
			r.Group(func(r chi.Router) {
				r.Use(authmw.AuthMiddleware(cfg.Tokens))

				r.Post("/logout", cfg.AuthHandler.Logout)
				r.Post("/change-password", cfg.UserHandler.ChangePassword)
				r.Get("/me", cfg.UserHandler.Me)
				r.Patch("/me", cfg.UserHandler.UpdateProfile)
				r.Patch("/avatar", cfg.UserHandler.UpdateAvatar)
				r.Patch("/cover", cfg.UserHandler.UpdateCoverImage)
				r.Get("/history", cfg.UserHandler.WatchHistory)
				r.Get("/subscriptions", cfg.SubscriptionHandler.ListSubscriptions)
			})
		})

		r.Route("/channels", func(r chi.Router) {
			r.With(authmw.OptionalAuthMiddleware(cfg.Tokens)).Get("/{username}", cfg.SubscriptionHandler.GetChannelProfile)
			r.With(authmw.OptionalAuthMiddleware(cfg.Tokens)).Get("/{username}/videos", cfg.VideoHandler.ListByChannel)
			r.Get("/{username}/subscribers", cfg.SubscriptionHandler.ListSubscribers)

			r.Group(func(r chi.Router) {
				r.Use(authmw.AuthMiddleware(cfg.Tokens))

				r.Post("/{username}/subscribe", cfg.SubscriptionHandler.Subscribe)
				r.Delete("/{username}/subscribe", cfg.SubscriptionHandler.Unsubscribe)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.With(authmw.OptionalAuthMiddleware(cfg.Tokens)).Get("/{videoID}", cfg.VideoHandler.Get)
			r.With(authmw.OptionalAuthMiddleware(cfg.Tokens)).Get("/{videoID}/watch", cfg.VideoHandler.Watch)

			r.Group(func(r chi.Router) {
				r.Use(authmw.AuthMiddleware(cfg.Tokens))

				r.Post("/", cfg.VideoHandler.Publish)
				r.Patch("/{videoID}/publish", cfg.VideoHandler.TogglePublish)
			})
		})
	})

	return r
}
