package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/fboard-dev/fboard/internal/middleware"
	"github.com/fboard-dev/fboard/internal/middleware/metrics"
	rl "github.com/fboard-dev/fboard/internal/middleware/ratelimiter"
	"github.com/fboard-dev/fboard/internal/setup"
)

// New configures the chi router with all routes.
// Code-sending endpoints get per-email and per-IP limits; code checking gets
// stricter per-email limits to slow brute force.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Claim-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Email-sending endpoints: 1 per 10s per email, 1 per s per IP
			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(rl.New(0.1, 1, time.Hour), mw.GetEmailFromBody))
				r.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
				r.Use(mw.GlobalRateLimit(rl.Rps100()))
				r.Post("/send_verification_code", h.SendVerificationCode)
				r.Post("/send_login_code", h.SendLoginCode)
			})

			// Code checking: 5 attempts per 10 minutes per email
			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(rl.New(5.0/600.0, 5, time.Hour), mw.GetEmailFromBody))
				r.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
				r.Use(mw.GlobalRateLimit(rl.Rps100()))
				r.Post("/check_verification_code", h.CheckVerificationCode)
				r.Post("/login", h.Login)
			})

			r.Get("/verified", h.GetVerifiedStatus)
			r.Post("/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.New(0.1, 3, time.Hour), mw.GetIP)) // board creation is cheap to abuse
			r.Post("/boards", h.CreateBoard)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Get("/me/boards", h.GetMyBoards)
		})

		// Everything below accepts either credential: the claim token header
		// or a session. OptionalAuth populates the account when present.
		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Use(mw.RateLimit(rl.Rps10(), mw.GetAccountFromContext))

			r.Route("/boards/{board}", func(r chi.Router) {
				r.Get("/", h.GetBoard)
				r.Patch("/", h.RenameBoard)
				r.Delete("/", h.DeleteBoard)
				r.Post("/claim", h.ClaimBoard)

				r.Post("/posts", h.CreatePost)
				r.Patch("/posts/{post}", h.UpdatePostStatus)
				r.Delete("/posts/{post}", h.DeletePost)

				r.Route("/changelog", func(r chi.Router) {
					r.Get("/", h.GetChangelog)
					r.Post("/", h.CreateChangelogEntry)
					r.Put("/{entry}", h.UpdateChangelogEntry)
					r.Delete("/{entry}", h.DeleteChangelogEntry)
				})
			})

			r.Route("/posts/{post}", func(r chi.Router) {
				r.Post("/votes", h.CastVote)
				r.Delete("/votes", h.RetractVote)
				r.Get("/votes/status", h.GetVoteStatus)

				r.Get("/comments", h.GetComments)
				r.Post("/comments", h.CreateComment)
			})

			r.Delete("/comments/{comment}", h.DeleteComment)
		})
	})

	return r
}
