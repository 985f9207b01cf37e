package routes

import (
	"github.com/bowen700/fantasy-workplace/handlers"
	"github.com/bowen700/fantasy-workplace/middleware"
	"github.com/bowen700/fantasy-workplace/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	leagueHandler *handlers.LeagueHandler,
	scheduleHandler *handlers.ScheduleHandler,
	standingsHandler *handlers.StandingsHandler,
	submissionHandler *handlers.SubmissionHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/register", authHandler.RegisterHandler)
	router.Post("/auth/login", authHandler.LoginHandler)

	// Live updates; auth happens at the application layer, the socket is
	// read-only for clients.
	router.Get("/ws/seasons/{seasonID}", webSocketHandler.ServeWs)

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", leagueHandler.ListSeasonsHandler)
		r.Get("/{seasonID}", leagueHandler.GetSeasonHandler)
		r.Get("/{seasonID}/standings", standingsHandler.GetStandingsHandler)
		r.Get("/{seasonID}/weeks/{week}/matchups", scheduleHandler.ListMatchupsHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize(string(models.RoleAdmin)))

			r.Post("/", leagueHandler.CreateSeasonHandler)
			r.Post("/{seasonID}/advance-week", leagueHandler.AdvanceWeekHandler)
			r.Post("/{seasonID}/shuffle", scheduleHandler.ShuffleSeasonHandler)
			r.Post("/{seasonID}/standings/export", standingsHandler.ExportStandingsHandler)
			r.Post("/{seasonID}/weeks/{week}/matchups", scheduleHandler.GenerateMatchupsHandler)
			r.Post("/{seasonID}/weeks/{week}/shuffle", scheduleHandler.ShuffleWeekHandler)
			r.Post("/{seasonID}/weeks/{week}/scores", scheduleHandler.RecalculateScoresHandler)
		})
	})

	router.Route("/metrics", func(r chi.Router) {
		r.Get("/", leagueHandler.ListMetricsHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize(string(models.RoleAdmin)))

			r.Post("/", leagueHandler.CreateMetricHandler)
			r.Put("/{metricID}", leagueHandler.UpdateMetricHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))

		r.Post("/submissions", submissionHandler.SubmitMetricHandler)
		r.Get("/competitors/{competitorID}/submissions", submissionHandler.ListSubmissionsHandler)
		r.Get("/competitors/{competitorID}/summaries", submissionHandler.WeeklySummariesHandler)
		r.Post("/competitors/{competitorID}/coaching-note", submissionHandler.CoachingNoteHandler)
	})
}
