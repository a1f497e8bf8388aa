package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rmsato/todoapi/internal/api"
	apimiddleware "github.com/rmsato/todoapi/internal/api/middleware"
)

// Per-IP rate limits. Registration is capped tightly; login more
// loosely to slow credential stuffing without hurting real users.
const (
	registrationRateLimit  = 3
	registrationRateWindow = time.Hour
	loginRateLimit         = 10
	loginRateWindow        = time.Minute
)

// setupRouter builds the HTTP route tree from the application's
// handlers and middleware.
func (app *application) setupRouter() http.Handler {
	authHandler := api.NewAuthHandler(
		app.registrationService,
		app.userService,
		app.jwtService,
		app.blacklist,
		app.config.Auth.CookieSecure,
	)
	todoHandler := api.NewTodoHandler(app.todoService, app.userService)
	webhookHandler := api.NewWebhookHandler(app.mailer)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)
	signatureMiddleware := apimiddleware.NewSignatureMiddleware(app.verifier)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/", api.HealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.With(apimiddleware.IPRateLimit(registrationRateLimit, registrationRateWindow)).
				Post("/registration/", authHandler.Register)
			r.With(apimiddleware.IPRateLimit(loginRateLimit, loginRateWindow)).
				Post("/login/", authHandler.Login)
			r.Post("/logout/", authHandler.Logout)
			r.Post("/token/refresh/", authHandler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Get("/user/", authHandler.CurrentUser)
				r.Patch("/user/", authHandler.UpdateUser)
			})
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Get("/stats/", todoHandler.Stats)
			r.Get("/progress-stats/", todoHandler.ProgressStats)
			r.Get("/{id}/", todoHandler.Get)
			r.Put("/{id}/", todoHandler.Update)
			r.Patch("/{id}/", todoHandler.Patch)
			r.Delete("/{id}/", todoHandler.Delete)
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Use(signatureMiddleware.Verify)
			r.Post("/send-welcome-email", webhookHandler.SendWelcomeEmail)
		})
	})

	return r
}
