package service

import (
	"context"

	"github.com/gobigbed/bigbed/internal/cache"
	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/repository"
	"github.com/gobigbed/bigbed/pkg/pagination"
	"github.com/google/uuid"
)

// IntervalService is the read/import surface over the health data source.
// Session-end writes go through TrackerService; this service handles
// third-party imports, manual entries, and listing.
type IntervalService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateIntervalRequest) (*domain.SleepInterval, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) (*domain.IntervalListResponse, error)
}

type intervalService struct {
	repo         repository.IntervalRepository
	userRepo     repository.UserRepository
	summaryCache *cache.SummaryCache
}

func NewIntervalService(repo repository.IntervalRepository, userRepo repository.UserRepository, summaryCache *cache.SummaryCache) IntervalService {
	return &intervalService{
		repo:         repo,
		userRepo:     userRepo,
		summaryCache: summaryCache,
	}
}

func (s *intervalService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateIntervalRequest) (*domain.SleepInterval, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if !req.EndAt.After(req.StartAt) {
		return nil, domain.ErrInvalidInput
	}

	interval := &domain.SleepInterval{
		UserID:   userID,
		StartAt:  req.StartAt.UTC(),
		EndAt:    req.EndAt.UTC(),
		Source:   req.Source,
		Category: req.Category,
	}

	if err := s.repo.Create(ctx, interval); err != nil {
		return nil, err
	}

	// New rows change nightly totals; drop the cached summaries.
	s.summaryCache.Invalidate(ctx, userID)

	return interval, nil
}

func (s *intervalService) List(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) (*domain.IntervalListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	intervals, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(intervals) > limit
	if hasMore {
		intervals = intervals[:limit]
	}

	response := &domain.IntervalListResponse{
		Data: make([]domain.IntervalResponse, len(intervals)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i, interval := range intervals {
		response.Data[i] = interval.ToResponse()
	}

	if hasMore && len(intervals) > 0 {
		last := intervals[len(intervals)-1]
		cursor := &pagination.Cursor{
			ID:      last.ID,
			StartAt: last.StartAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
