// Package server provides the HTTP server and routing for the projection service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/database"
	assumptionshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions/handlers"
	householdshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households/handlers"
	projectionhandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/projection/handlers"
	propertieshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties/handlers"
	scenarioshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios/handlers"
)

// Config holds server configuration
type Config struct {
	Port    int
	DevMode bool
	Log     zerolog.Logger

	PlanDB        *database.DB
	AssumptionsDB *database.DB
	CacheDB       *database.DB

	PropertiesHandler  *propertieshandlers.Handler
	HouseholdsHandler  *householdshandlers.Handler
	ScenariosHandler   *scenarioshandlers.Handler
	AssumptionsHandler *assumptionshandlers.Handler
	ProjectionHandler  *projectionhandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	systemHandlers *SystemHandlers
	cfg            Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.PlanDB, cfg.AssumptionsDB, cfg.CacheDB)

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.systemHandlers.HandleHealth)
	s.router.Get("/status", s.systemHandlers.HandleStatus)

	s.cfg.PropertiesHandler.RegisterRoutes(s.router)
	s.cfg.HouseholdsHandler.RegisterRoutes(s.router)
	s.cfg.ScenariosHandler.RegisterRoutes(s.router)
	s.cfg.AssumptionsHandler.RegisterRoutes(s.router)
	s.cfg.ProjectionHandler.RegisterRoutes(s.router)
}

// Router exposes the chi router (used in tests)
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}
