package main

import (
	"context"
	"log"
	"os"

	"boardinghouse/internal/database"
	"boardinghouse/internal/repository"
)

// Intended to run from cron. Password-reset tokens are single-use with a
// short TTL, so anything expired or already used is garbage.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	resets := repository.NewPasswordResetRepository(db)
	removed, err := resets.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup password_reset_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: password_reset_tokens=%d", removed)
}
