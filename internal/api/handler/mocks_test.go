package handler

import (
	"context"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
)

// MockTrackerService is a mock implementation of TrackerService
type MockTrackerService struct {
	startFunc     func(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error)
	endFunc       func(ctx context.Context, userID uuid.UUID) (*domain.EndSessionResponse, error)
	abandonFunc   func(ctx context.Context, userID uuid.UUID) error
	snapshotFunc  func(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error)
	ingestFunc    func(ctx context.Context, userID uuid.UUID, req *domain.MotionBatchRequest) (int, error)
	bootstrapFunc func(ctx context.Context) error
}

func (m *MockTrackerService) Start(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, userID)
	}
	now := time.Now()
	return &domain.SessionSnapshot{Running: true, StartAt: &now, Elapsed: "00:00:00", WithinWindow: true}, nil
}

func (m *MockTrackerService) End(ctx context.Context, userID uuid.UUID) (*domain.EndSessionResponse, error) {
	if m.endFunc != nil {
		return m.endFunc(ctx, userID)
	}
	return &domain.EndSessionResponse{Recorded: true, Seconds: 28800}, nil
}

func (m *MockTrackerService) Abandon(ctx context.Context, userID uuid.UUID) error {
	if m.abandonFunc != nil {
		return m.abandonFunc(ctx, userID)
	}
	return nil
}

func (m *MockTrackerService) Snapshot(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error) {
	if m.snapshotFunc != nil {
		return m.snapshotFunc(ctx, userID)
	}
	return &domain.SessionSnapshot{Running: false, Elapsed: "00:00:00"}, nil
}

func (m *MockTrackerService) IngestSamples(ctx context.Context, userID uuid.UUID, req *domain.MotionBatchRequest) (int, error) {
	if m.ingestFunc != nil {
		return m.ingestFunc(ctx, userID, req)
	}
	return len(req.Samples), nil
}

func (m *MockTrackerService) Bootstrap(ctx context.Context) error {
	if m.bootstrapFunc != nil {
		return m.bootstrapFunc(ctx)
	}
	return nil
}

// MockIntervalService is a mock implementation of IntervalService
type MockIntervalService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateIntervalRequest) (*domain.SleepInterval, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) (*domain.IntervalListResponse, error)
}

func (m *MockIntervalService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateIntervalRequest) (*domain.SleepInterval, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.SleepInterval{
		ID:        uuid.New(),
		UserID:    userID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Source:    req.Source,
		Category:  req.Category,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockIntervalService) List(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) (*domain.IntervalListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.IntervalListResponse{
		Data:       []domain.IntervalResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockSummaryService is a mock implementation of SummaryService
type MockSummaryService struct {
	lastNightsFunc func(ctx context.Context, userID uuid.UUID, days int) ([]domain.SleepDay, error)
}

func (m *MockSummaryService) LastNights(ctx context.Context, userID uuid.UUID, days int) ([]domain.SleepDay, error) {
	if m.lastNightsFunc != nil {
		return m.lastNightsFunc(ctx, userID, days)
	}
	return []domain.SleepDay{}, nil
}

// MockRewardsService is a mock implementation of RewardsService
type MockRewardsService struct {
	computeFunc func(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RewardsResponse, error)
}

func (m *MockRewardsService) Compute(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RewardsResponse, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID, windowDays)
	}
	return &domain.RewardsResponse{WindowDays: windowDays}, nil
}

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

func (m *MockInsightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID)
	}
	return &domain.InsightsResponse{Summary: "ok"}, nil
}
