package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hvergara/auth-service/internal/config"
	"github.com/hvergara/auth-service/internal/server"
	"github.com/hvergara/auth-service/internal/storage"
	"github.com/hvergara/auth-service/internal/storage/memory"
	"github.com/hvergara/auth-service/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	userStore, cleanup, err := newUserStore(cfg)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer cleanup()

	srv := server.New(cfg, userStore)

	go func() {
		log.Printf("auth service listening on %s", cfg.HTTPAddress())
		log.Printf("health check: http://localhost:%s/health", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// newUserStore picks the backend: Postgres when DATABASE_URL is set,
// otherwise the in-memory store (no persistence across restarts).
func newUserStore(cfg config.Config) (storage.UserStore, func(), error) {
	if cfg.DatabaseURL != "" {
		store, err := postgres.NewUserStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return memory.NewStore(), func() {}, nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
