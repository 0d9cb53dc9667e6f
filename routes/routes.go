package routes

import (
	"net/http"

	_ "github.com/Dosada05/swiss-tournament/docs"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Player    *handlers.PlayerHandler
	Match     *handlers.MatchHandler
	Standings *handlers.StandingsHandler
	Auth      *handlers.AuthHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

type Options struct {
	// JWTSecret enables organizer authentication on mutating routes. Empty leaves them open.
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Check)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws", h.WebSocket.ServeWs)

	router.Post("/auth/token", h.Auth.Token)

	router.Get("/players/count", h.Player.Count)
	router.Get("/standings", h.Standings.List)
	router.Get("/matches", h.Match.List)
	router.Get("/overview", h.Standings.Overview)

	router.Group(func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(middleware.Authenticate([]byte(opts.JWTSecret)))
			r.Use(middleware.Authorize(services.RoleOrganizer))
		}

		r.Post("/players", h.Player.Register)
		r.Delete("/players", h.Player.DeleteAll)

		r.Post("/matches", h.Match.Report)
		r.Delete("/matches", h.Player.DeleteMatches)

		r.Post("/rounds", h.Match.PairRound)
		r.Post("/archive", h.Standings.Archive)
	})
}
