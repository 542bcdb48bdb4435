package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seededNights = 40

// Run seeds the database with sample users and sleep intervals from every
// source. Safe to call multiple times.
func Run(db *gorm.DB) error {
	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedIntervalsForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedIntervalsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	var count int64
	if err := db.Model(&domain.SleepInterval{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := 0; i < seededNights; i++ {
		date := now.AddDate(0, 0, -i)
		bedtime := time.Date(date.Year(), date.Month(), date.Day(), 22+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC)
		wakeup := bedtime.Add(time.Duration(6+rng.Intn(3)) * time.Hour)

		// The app's own session recording for the night.
		night := domain.SleepInterval{
			UserID:   user.ID,
			StartAt:  bedtime,
			EndAt:    wakeup,
			Source:   domain.SourceApp,
			Category: domain.CategoryAsleepUnspecified,
		}
		if err := db.Create(&night).Error; err != nil {
			return fmt.Errorf("failed to create app interval: %w", err)
		}

		// A wearable reporting staged sleep that overlaps the app's row.
		// The aggregator merges these into one run.
		if rng.Float32() < 0.6 {
			stage := domain.SleepInterval{
				UserID:   user.ID,
				StartAt:  bedtime.Add(time.Duration(rng.Intn(30)) * time.Minute),
				EndAt:    wakeup.Add(-time.Duration(rng.Intn(30)) * time.Minute),
				Source:   domain.SourceThirdParty,
				Category: domain.CategoryAsleepDeep,
			}
			if err := db.Create(&stage).Error; err != nil {
				return fmt.Errorf("failed to create third-party interval: %w", err)
			}
		}

		// An awake gap in the middle of the night; never counts.
		if rng.Float32() < 0.3 {
			awakeStart := bedtime.Add(time.Duration(2+rng.Intn(3)) * time.Hour)
			awake := domain.SleepInterval{
				UserID:   user.ID,
				StartAt:  awakeStart,
				EndAt:    awakeStart.Add(time.Duration(5+rng.Intn(15)) * time.Minute),
				Source:   domain.SourceThirdParty,
				Category: domain.CategoryAwake,
			}
			if err := db.Create(&awake).Error; err != nil {
				return fmt.Errorf("failed to create awake interval: %w", err)
			}
		}

		// A manual entry; excluded from totals by provenance.
		if rng.Float32() < 0.2 {
			manualStart := time.Date(date.Year(), date.Month(), date.Day(), 13+rng.Intn(3), rng.Intn(60), 0, 0, time.UTC)
			manual := domain.SleepInterval{
				UserID:   user.ID,
				StartAt:  manualStart,
				EndAt:    manualStart.Add(time.Duration(20+rng.Intn(40)) * time.Minute),
				Source:   domain.SourceUserEntered,
				Category: domain.CategoryAsleepUnspecified,
			}
			if err := db.Create(&manual).Error; err != nil {
				return fmt.Errorf("failed to create manual interval: %w", err)
			}
		}
	}
	return nil
}
