package service

import (
	"context"
	"testing"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
)

func TestIntervalCreate(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	repo := &mockIntervalRepo{}
	svc := NewIntervalService(repo, newMockUserRepo(user), nil)

	loc := time.FixedZone("CET", 3600)
	req := &domain.CreateIntervalRequest{
		StartAt:  time.Date(2025, 3, 10, 23, 0, 0, 0, loc),
		EndAt:    time.Date(2025, 3, 11, 7, 0, 0, 0, loc),
		Source:   domain.SourceThirdParty,
		Category: domain.CategoryAsleepCore,
	}

	interval, err := svc.Create(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if interval.StartAt.Location() != time.UTC {
		t.Error("expected stored start time normalized to UTC")
	}
	if interval.Source != domain.SourceThirdParty {
		t.Errorf("Source = %q, want %q", interval.Source, domain.SourceThirdParty)
	}
	if len(repo.all()) != 1 {
		t.Fatalf("expected 1 stored interval, got %d", len(repo.all()))
	}
}

func TestIntervalCreateRejectsInvertedRange(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	svc := NewIntervalService(&mockIntervalRepo{}, newMockUserRepo(user), nil)

	req := &domain.CreateIntervalRequest{
		StartAt:  time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
		Source:   domain.SourceThirdParty,
		Category: domain.CategoryAsleepCore,
	}

	if _, err := svc.Create(context.Background(), user.ID, req); err != domain.ErrInvalidInput {
		t.Fatalf("Create() error = %v, want ErrInvalidInput", err)
	}
}

func TestIntervalCreateUnknownUser(t *testing.T) {
	svc := NewIntervalService(&mockIntervalRepo{}, newMockUserRepo(), nil)

	req := &domain.CreateIntervalRequest{
		StartAt:  time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC),
		Source:   domain.SourceUserEntered,
		Category: domain.CategoryAsleepCore,
	}

	if _, err := svc.Create(context.Background(), uuid.New(), req); err != domain.ErrNotFound {
		t.Fatalf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestIntervalListPagination(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	repo := &mockIntervalRepo{}
	base := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repo.intervals = append(repo.intervals, domain.SleepInterval{
			ID:       uuid.New(),
			UserID:   user.ID,
			StartAt:  base.AddDate(0, 0, i),
			EndAt:    base.AddDate(0, 0, i).Add(8 * time.Hour),
			Source:   domain.SourceApp,
			Category: domain.CategoryAsleepUnspecified,
		})
	}
	svc := NewIntervalService(repo, newMockUserRepo(user), nil)

	resp, err := svc.List(context.Background(), user.ID, domain.IntervalFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}
	if !resp.Pagination.HasMore {
		t.Error("expected HasMore")
	}
	if resp.Pagination.NextCursor == "" {
		t.Error("expected a next cursor")
	}
}
