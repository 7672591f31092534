package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hvergara/auth-service/internal/auth"
	"github.com/hvergara/auth-service/internal/config"
	"github.com/hvergara/auth-service/internal/http/handlers"
	"github.com/hvergara/auth-service/internal/middleware"
	"github.com/hvergara/auth-service/internal/service"
	"github.com/hvergara/auth-service/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	svc := service.NewAuthService(store, tokens)

	mux := http.NewServeMux()
	handlers.NewRootHandler().Register(mux)
	handlers.NewHealthHandler(store).Register(mux)
	handlers.NewAuthHandler(svc).Register(mux)

	handler := middleware.SecureHeaders(middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
