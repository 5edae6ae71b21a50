// Package api provides the HTTP API server and handlers for the
// CareerLens service.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/careerlens/careerlens-server/internal/artifact"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/ratelimit"
	"github.com/careerlens/careerlens-server/internal/service"
	"github.com/careerlens/careerlens-server/internal/validation"
)

// Services bundles the business services the handlers depend on.
type Services struct {
	Prediction *service.PredictionService
	Comparison *service.ComparisonService
	Insight    *service.InsightService
	Roadmap    *service.RoadmapService
}

// Options configures server behavior beyond its dependencies.
type Options struct {
	Name           string
	MaxUploadBytes int64
	RoadmapRPM     int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	router         *chi.Mux
	api            huma.API
	services       *Services
	artifacts      *artifact.Store
	validate       *validation.Validator
	roadmapLimiter *ratelimit.KeyedLimiter
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(services *Services, artifacts *artifact.Store, log *logger.Logger, opts Options) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		services:       services,
		artifacts:      artifacts,
		validate:       validation.New(),
		roadmapLimiter: ratelimit.PerMinute(opts.RoadmapRPM, 2),
		maxUploadBytes: opts.MaxUploadBytes,
		logger:         log,
	}

	// Middleware must be in place before the first route registration.
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(opts.Name, "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerPredictRoutes()
	s.registerCompareRoutes()
	s.registerInsightRoutes()
	s.registerRoadmapRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.roadmapRateLimit)
}
