package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/craftly-living/backend/config"
	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/matching"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(store database.Storage, cfg config.Config) Server {
	// Capture startup time
	startupTime := time.Now()

	router := NewRouter(store, WithMaxBodyBytes(cfg.MaxBodyBytes), WithStartupTime(startupTime))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}
}

type router struct {
	maxBodyBytes int64
	startupTime  time.Time
	matcher      *matching.Matcher
}

type RouterOption func(*router)

// WithMaxBodyBytes caps request bodies; larger bodies are answered with 413.
func WithMaxBodyBytes(n int64) RouterOption {
	return func(r *router) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

func WithStartupTime(startupTime time.Time) RouterOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// WithMatcher replaces the sample contractor matcher used by the dashboard.
func WithMatcher(m *matching.Matcher) RouterOption {
	return func(r *router) {
		r.matcher = m
	}
}

// NewRouter builds the HTTP surface over store.
func NewRouter(store database.Storage, opts ...RouterOption) *chi.Mux {
	router := router{
		maxBodyBytes: 1 << 20,
		startupTime:  time.Now(),
		matcher:      matching.NewSampleMatcher(),
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware)
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type"},
		ExposedHeaders:     []string{requestIDHeader},
		OptionsPassthrough: true,
	}))
	chiRouter.Use(allowAnyOrigin)

	handlers := initializeHandlers(store, router)
	setupRoutes(chiRouter, handlers)

	return chiRouter
}

// Serve listens until the server is shut down. A graceful shutdown is not an error.
func (s Server) Serve() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("HttpServer gracefully shut down")
	}
}
