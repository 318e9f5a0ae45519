package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"anilink/internal/backend"
	"anilink/internal/config"
	"anilink/internal/database"
	jwtsvc "anilink/internal/pkg/jwt"
	"anilink/internal/realtime"
	"anilink/internal/repository"
	"anilink/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	upstream, err := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	hub := realtime.NewHub()
	regOpts := []session.Option{
		session.WithPublisher(hub),
		session.WithMaxAge(cfg.CacheStaleAfter),
		session.WithIdleTTL(cfg.SessionIdleTTL),
	}

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
		regOpts = append(regOpts, session.WithSnapshots(repository.NewSnapshotRepository(db)))
	} else {
		log.Println("DATABASE_URL is empty, fallback snapshots disabled")
	}

	registry := session.NewRegistry(regOpts...)
	j := jwtsvc.New(cfg.JWTSecret, 15*time.Minute)

	r := newRouter(cfg, deps{
		upstream: upstream,
		registry: registry,
		hub:      hub,
		jwt:      j,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go registry.Run(ctx, cfg.SessionSweepInterval)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("anilink gateway listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
