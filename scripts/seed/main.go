package main

import (
	"fmt"
	"log"

	"github.com/gobigbed/bigbed/internal/config"
	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/seed"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SleepInterval{},
		&domain.SessionStateRecord{},
		&domain.RewardState{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	fmt.Println("\nSample user IDs for testing:")
	fmt.Println("  11111111-1111-1111-1111-111111111111 (Europe/Amsterdam)")
	fmt.Println("  22222222-2222-2222-2222-222222222222 (America/New_York)")
	fmt.Println("  33333333-3333-3333-3333-333333333333 (Asia/Tokyo)")
	fmt.Println("  44444444-4444-4444-4444-444444444444 (Australia/Sydney)")
}
