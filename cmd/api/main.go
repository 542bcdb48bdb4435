// GoBigBed API
//
// REST API for overnight sleep sessions, nightly totals, and rewards.
//
//	@title			GoBigBed API
//	@version		1.0
//	@description	Track overnight sleep sessions with motion-based anti-cheat, nightly totals, and reward credits.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			session
//	@tag.description	Sleep session lifecycle endpoints
//
//	@tag.name			sleep-intervals
//	@tag.description	Health data store endpoints
//
//	@tag.name			nights
//	@tag.description	Nightly sleep totals
//
//	@tag.name			rewards
//	@tag.description	Points and milestone credits
//
//	@tag.name			insights
//	@tag.description	LLM-generated sleep insights
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gobigbed/bigbed/internal/api"
	"github.com/gobigbed/bigbed/internal/api/handler"
	"github.com/gobigbed/bigbed/internal/cache"
	"github.com/gobigbed/bigbed/internal/config"
	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/llm"
	"github.com/gobigbed/bigbed/internal/motion"
	"github.com/gobigbed/bigbed/internal/repository"
	"github.com/gobigbed/bigbed/internal/seed"
	"github.com/gobigbed/bigbed/internal/service"
	"github.com/gobigbed/bigbed/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op without an OTLP endpoint)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "bigbed-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SleepInterval{},
		&domain.SessionStateRecord{},
		&domain.RewardState{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Connect to Redis (nil client disables the summary cache)
	redisClient := cache.Connect(cfg.RedisAddr, cfg.RedisPassword)
	if redisClient == nil {
		log.Println("Redis not configured, summary caching disabled")
	}
	summaryCache := cache.NewSummaryCache(redisClient, 0)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	intervalRepo := repository.NewIntervalRepository(db)
	stateRepo := repository.NewSessionStateRepository(db)
	rewardStateRepo := repository.NewRewardStateRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	trackerService := service.NewTrackerService(service.TrackerConfig{
		CutoffHour:      cfg.CutoffHour,
		WindowStartHour: cfg.WindowStartHour,
		Motion: motion.Config{
			SpikeThresholdG: cfg.MotionSpikeThresholdG,
			MinSpikeCount:   cfg.MotionMinSpikeCount,
			Horizon:         time.Duration(cfg.MotionHorizonSeconds) * time.Second,
			SampleRateHz:    cfg.MotionSampleRateHz,
			ArmingDelay:     time.Duration(cfg.MotionArmingSeconds) * time.Second,
		},
	}, userRepo, intervalRepo, stateRepo, summaryCache)
	intervalService := service.NewIntervalService(intervalRepo, userRepo, summaryCache)
	summaryService := service.NewSummaryService(intervalRepo, userRepo, summaryCache, cfg.CutoffHour)
	rewardsService := service.NewRewardsService(summaryService, rewardStateRepo, cfg.MilestoneCap)

	// Initialize OpenAI client (may be nil if not configured)
	var insightsLLM llm.InsightsLLM
	if openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIInsightsModel); openaiClient != nil {
		insightsLLM = openaiClient
	} else {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}
	insightsService := service.NewInsightsService(summaryService, rewardsService, insightsLLM)

	// Resume persisted sessions from before the restart
	if err := trackerService.Bootstrap(ctx); err != nil {
		log.Printf("Warning: session bootstrap failed: %v", err)
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sessionHandler := handler.NewSessionHandler(trackerService)
	intervalHandler := handler.NewIntervalHandler(intervalService)
	nightsHandler := handler.NewNightsHandler(summaryService)
	rewardsHandler := handler.NewRewardsHandler(rewardsService)
	insightsHandler := handler.NewInsightsHandler(insightsService)

	// Setup router
	router := api.NewRouter(userHandler, sessionHandler, intervalHandler, nightsHandler, rewardsHandler, insightsHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
