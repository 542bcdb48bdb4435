package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gobigbed/bigbed/internal/cache"
	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/nightly"
	"github.com/gobigbed/bigbed/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultSummaryDays is the default nightly-summary window.
	DefaultSummaryDays = 7

	// MaxSummaryDays bounds a single summary query.
	MaxSummaryDays = 365
)

// SummaryService computes per-night sleep totals from the health store.
type SummaryService interface {
	// LastNights returns one SleepDay per night bucket for the trailing
	// window ending now, oldest first. Zero-total nights are included.
	LastNights(ctx context.Context, userID uuid.UUID, days int) ([]domain.SleepDay, error)
}

type summaryService struct {
	intervalRepo repository.IntervalRepository
	userRepo     repository.UserRepository
	summaryCache *cache.SummaryCache
	cutoffHour   int
	now          func() time.Time
}

// NewSummaryService creates a SummaryService. A nil cache disables caching.
func NewSummaryService(
	intervalRepo repository.IntervalRepository,
	userRepo repository.UserRepository,
	summaryCache *cache.SummaryCache,
	cutoffHour int,
) SummaryService {
	if cutoffHour <= 0 {
		cutoffHour = nightly.DefaultCutoffHour
	}
	return &summaryService{
		intervalRepo: intervalRepo,
		userRepo:     userRepo,
		summaryCache: summaryCache,
		cutoffHour:   cutoffHour,
		now:          time.Now,
	}
}

func (s *summaryService) LastNights(ctx context.Context, userID uuid.UUID, days int) ([]domain.SleepDay, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = DefaultSummaryDays
	}
	if days > MaxSummaryDays {
		days = MaxSummaryDays
	}

	if cached, ok := s.summaryCache.Get(ctx, userID, days); ok {
		return cached, nil
	}

	tracer := otel.Tracer("bigbed-api/summary")
	ctx, span := tracer.Start(ctx, "SummaryService.LastNights",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.Int("window.days", days),
		),
	)
	defer span.End()

	loc := user.Location()
	now := s.now()
	rangeStart := now.AddDate(0, 0, -(days - 1))

	// Fetch the full span of the night buckets so intervals straddling the
	// range edges still contribute their in-bucket portion.
	firstBucket := nightly.BucketStart(rangeStart, s.cutoffHour, loc)
	queryEnd := nightly.BucketStart(now, s.cutoffHour, loc).AddDate(0, 0, 1)

	intervals, err := s.intervalRepo.ListOverlapping(ctx, userID, firstBucket.UTC(), queryEnd.UTC())
	if err != nil {
		return nil, err
	}

	summary := nightly.Aggregate(intervals, rangeStart, now, s.cutoffHour, loc)

	span.SetAttributes(attribute.Int("intervals.count", len(intervals)))
	if out, err := json.Marshal(summary); err == nil {
		span.SetAttributes(attribute.String("summary.output", string(out)))
	}

	s.summaryCache.Set(ctx, userID, days, summary)
	return summary, nil
}
