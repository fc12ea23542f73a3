package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/calebmh/inkwell-be/internal/api/handlers"
	"github.com/calebmh/inkwell-be/internal/auth"
	"github.com/calebmh/inkwell-be/internal/services"
)

// NewRouter creates and configures a new Chi router. Public routes are
// login, registration, and post reads; everything else sits behind the
// bearer-token middleware.
func NewRouter(
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	postService services.PostServiceProvider,
	corsOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)

	requireAuth := auth.Middleware(authService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/login", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Create)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", userHandler.GetAll)
				r.Get("/{id}", userHandler.Get)
				r.Patch("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.GetAll)
			r.Get("/{id}", postHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", postHandler.Create)
				r.Get("/user/{userId}", postHandler.GetByUser)
				r.Patch("/{id}", postHandler.Update)
				r.Delete("/{id}", postHandler.Delete)
			})
		})
	})

	return r
}
