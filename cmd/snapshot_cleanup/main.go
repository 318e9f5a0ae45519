package main

import (
	"context"
	"log"
	"time"

	"anilink/internal/config"
	"anilink/internal/database"
	"anilink/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-cfg.SnapshotRetention)
	n, err := repository.NewSnapshotRepository(db).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Fatalf("cleanup cache_snapshots failed: %v", err)
	}

	log.Printf("snapshot cleanup completed: cache_snapshots=%d cutoff=%s", n, cutoff.UTC().Format(time.RFC3339))
}
