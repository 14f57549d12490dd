package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/api/handlers"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/auth"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Manager,
	corsOrigin string,
	accountService services.AccountServiceProvider,
	schoolService services.SchoolServiceProvider,
	eventService services.EventServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, tokens)
	applicationHandler := handlers.NewApplicationHandler(accountService)
	schoolHandler := handlers.NewSchoolHandler(schoolService)
	eventHandler := handlers.NewEventHandler(eventService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", accountHandler.Register)
		r.Post("/auth/login", accountHandler.Login)
		r.Get("/schools", schoolHandler.GetAll)
		r.Get("/schools/{id}", schoolHandler.Get)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Get("/auth/me", accountHandler.GetMe)

			r.Route("/accounts", func(r chi.Router) {
				r.With(auth.RequireAdmin).Get("/", accountHandler.GetAll)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", accountHandler.Get)
					r.Put("/", accountHandler.Update)
					r.Delete("/", accountHandler.Delete)
					r.Put("/password", accountHandler.ChangePassword)
				})
			})

			// Approval workflow, admin only
			r.Route("/applications", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/", applicationHandler.GetPending)
				r.Put("/{id}/approve", applicationHandler.Approve)
				r.Put("/{id}/reject", applicationHandler.Reject)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.GetAll)
				r.Get("/{id}", eventHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin)
					r.Post("/", eventHandler.Create)
					r.Put("/{id}", eventHandler.Update)
					r.Delete("/{id}", eventHandler.Delete)
				})
			})

			// School management, admin only
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Post("/schools", schoolHandler.Create)
				r.Put("/schools/{id}", schoolHandler.Update)
				r.Delete("/schools/{id}", schoolHandler.Delete)
			})
		})
	})

	return r
}
