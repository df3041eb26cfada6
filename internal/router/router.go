package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ritim-dev/ritim/internal/middleware/metrics"
	"github.com/ritim-dev/ritim/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		// Public read surface
		r.Get("/posts/latest", h.LatestPosts)
		r.Get("/posts/popular", h.PopularPosts)
		r.Get("/posts/category/{category}", h.PostsByCategory)
		r.Get("/posts/{post}", h.GetPost)
		r.Get("/users/{user}/posts", h.PostsByAuthor)
		r.Get("/polls/{poll}", h.GetPoll)

		// Session-user routes
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Post("/posts", h.CreatePost)
			r.Post("/posts/{post}/comments", h.CreateComment)
			r.Post("/posts/{post}/like", h.ToggleLike)
			r.Post("/posts/{post}/bookmark", h.ToggleBookmark)
			r.Get("/bookmarks", h.Bookmarks)

			r.Post("/posts/{post}/poll", h.CreatePoll)
			r.Post("/polls/{poll}/vote", h.Vote)

			r.Post("/messages", h.SendMessage)
			r.Get("/messages/threads", h.ListThreads)
			r.Get("/messages/threads/{other}", h.GetThread)
			r.Post("/messages/threads/{other}/read", h.MarkThreadRead)

			r.Get("/notifications", h.ListNotifications)
			r.Post("/notifications/read", h.MarkNotificationsRead)
		})
	})

	return r
}
