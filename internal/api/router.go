package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/gobigbed/bigbed/docs"
	"github.com/gobigbed/bigbed/internal/api/handler"
	"github.com/gobigbed/bigbed/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler     *handler.UserHandler
	sessionHandler  *handler.SessionHandler
	intervalHandler *handler.IntervalHandler
	nightsHandler   *handler.NightsHandler
	rewardsHandler  *handler.RewardsHandler
	insightsHandler *handler.InsightsHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	sessionHandler *handler.SessionHandler,
	intervalHandler *handler.IntervalHandler,
	nightsHandler *handler.NightsHandler,
	rewardsHandler *handler.RewardsHandler,
	insightsHandler *handler.InsightsHandler,
) *Router {
	return &Router{
		userHandler:     userHandler,
		sessionHandler:  sessionHandler,
		intervalHandler: intervalHandler,
		nightsHandler:   nightsHandler,
		rewardsHandler:  rewardsHandler,
		insightsHandler: insightsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Sleep session (nested under users)
			r.Route("/{userId}/session", func(r chi.Router) {
				r.Get("/", rt.sessionHandler.Get)
				r.Post("/start", rt.sessionHandler.Start)
				r.Post("/end", rt.sessionHandler.End)
				r.Post("/abandon", rt.sessionHandler.Abandon)
				r.Post("/motion-samples", rt.sessionHandler.MotionSamples)
			})

			// Sleep intervals (health store surface)
			r.Route("/{userId}/sleep-intervals", func(r chi.Router) {
				r.Post("/", rt.intervalHandler.Create)
				r.Get("/", rt.intervalHandler.List)
			})

			// Nightly totals, rewards, insights
			r.Get("/{userId}/nights", rt.nightsHandler.Get)
			r.Get("/{userId}/rewards", rt.rewardsHandler.Get)
			r.Get("/{userId}/insights", rt.insightsHandler.Get)
		})
	})

	return r
}
