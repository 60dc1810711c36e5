package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/isdelr/exercise-tracker-be/internal/api/handlers"
	"github.com/isdelr/exercise-tracker-be/internal/services"
)

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	StaticDir      string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(opts Options, store handlers.Pinger, userService services.UserServiceProvider, exerciseService services.ExerciseServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	healthHandler := handlers.NewHealthHandler(store)

	r.Get("/healthz", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetAll)
			r.Post("/", userHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/exercises", exerciseHandler.Create)
				r.Get("/logs", exerciseHandler.GetLog)
			})
		})
	})

	// Landing page and any other static assets
	r.Get("/*", StaticFiles(opts.StaticDir))

	return r
}
