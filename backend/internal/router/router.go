package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huddle-dev/huddle/backend/internal/setup"
	"github.com/huddle-dev/huddle/shared/csrf"
	mw "github.com/huddle-dev/huddle/shared/middleware"
	"github.com/huddle-dev/huddle/shared/middleware/metrics"
)

// New creates the chi router with all routes.
// IMPORTANT! a limiter attached with Use is shared by every route of that group
func New(deps *setup.Dependencies) *chi.Mux {
	cfg := deps.Config
	h := deps.Handler
	limits := deps.Limiters

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", csrf.HeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeadersWithCSP(cfg.Public.SecureCookies, mw.APIContentSecurityPolicy))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	if deps.Files != nil {
		r.Handle("/files/*", http.StripPrefix("/files", deps.Files))
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(csrf.Middleware(cfg.Public.SecureCookies))
		v1.With(mw.RateLimit(limits.Public, mw.GetIP)).Get("/public_config", h.GetPublicConfig)

		v1.Group(func(auth chi.Router) {
			auth.Use(deps.AuthMiddleware.NeedAuth())
			auth.Use(mw.RateLimit(limits.User, mw.GetUserIDFromContext)) // 100 RPS per user

			auth.Post("/workspaces", h.CreateWorkspace)
			auth.Get("/workspaces", h.ListWorkspaces)
			auth.Delete("/workspaces/{workspace}", h.DeleteWorkspace)
			auth.Post("/workspaces/{workspace}/join", h.JoinWorkspace)
			auth.Get("/workspaces/{workspace}/members", h.ListMembers)
			auth.Post("/workspaces/{workspace}/members", h.InviteMember)
			auth.Get("/workspaces/{workspace}/channels", h.ListChannels)
			auth.Post("/workspaces/{workspace}/channels", h.CreateChannel)

			auth.Get("/channels/{channel}", h.GetChannel)
			auth.Delete("/channels/{channel}", h.DeleteChannel)
			auth.Get("/channels/{channel}/messages", h.ListMessages)
			// PostMessage: 5 per second per user
			auth.With(mw.RateLimit(limits.Post, mw.GetUserIDFromContext)).
				Post("/channels/{channel}/messages", h.PostMessage)

			auth.Get("/messages/{message}", h.GetMessage)
			auth.Get("/messages/{message}/reactions", h.ReactionCounts)
			// ToggleReaction: 10 per second per user
			auth.With(mw.RateLimit(limits.Reaction, mw.GetUserIDFromContext)).
				Post("/messages/{message}/reactions", h.ToggleReaction)

			auth.Get("/notifications", h.ListNotifications)
			// UploadAttachment: 1 per second per user
			auth.With(mw.RateLimit(limits.Upload, mw.GetUserIDFromContext)).
				Post("/attachments", h.UploadAttachment)
		})
	})

	return r
}
