package service

import (
	"context"
	"testing"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
)

func newTestSummary(now time.Time, intervalRepo *mockIntervalRepo, user *domain.User) SummaryService {
	svc := NewSummaryService(intervalRepo, newMockUserRepo(user), nil, 0).(*summaryService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSummaryLastNights(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	intervalRepo := &mockIntervalRepo{}
	// Night of Mar 10: 23:00 -> 07:00, eight hours.
	intervalRepo.intervals = append(intervalRepo.intervals, domain.SleepInterval{
		ID:       uuid.New(),
		UserID:   user.ID,
		StartAt:  time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC),
		Source:   domain.SourceApp,
		Category: domain.CategoryAsleepUnspecified,
	})
	// User-entered rows never count.
	intervalRepo.intervals = append(intervalRepo.intervals, domain.SleepInterval{
		ID:       uuid.New(),
		UserID:   user.ID,
		StartAt:  time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC),
		Source:   domain.SourceUserEntered,
		Category: domain.CategoryAsleepCore,
	})

	svc := newTestSummary(now, intervalRepo, user)

	nights, err := svc.LastNights(context.Background(), user.ID, 3)
	if err != nil {
		t.Fatalf("LastNights() error = %v", err)
	}
	if len(nights) != 3 {
		t.Fatalf("expected 3 nights, got %d", len(nights))
	}

	var total float64
	for _, n := range nights {
		total += n.Hours
	}
	if total != 8.0 {
		t.Errorf("total hours = %v, want 8.0", total)
	}

	// The eight-hour interval belongs to the Mar 10 noon bucket.
	found := false
	for _, n := range nights {
		if n.Date.Day() == 10 && n.Hours == 8.0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Mar 10 bucket with 8.0 hours, got %+v", nights)
	}
}

func TestSummaryUnknownUser(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	svc := newTestSummary(time.Now(), &mockIntervalRepo{}, user)

	_, err := svc.LastNights(context.Background(), uuid.New(), 7)
	if err != domain.ErrNotFound {
		t.Fatalf("LastNights() error = %v, want ErrNotFound", err)
	}
}

func TestSummaryClampsWindow(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	svc := newTestSummary(now, &mockIntervalRepo{}, user)

	nights, err := svc.LastNights(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("LastNights() error = %v", err)
	}
	if len(nights) != DefaultSummaryDays {
		t.Errorf("zero days window = %d nights, want %d", len(nights), DefaultSummaryDays)
	}

	nights, err = svc.LastNights(context.Background(), user.ID, MaxSummaryDays+100)
	if err != nil {
		t.Fatalf("LastNights() error = %v", err)
	}
	if len(nights) != MaxSummaryDays {
		t.Errorf("oversized window = %d nights, want %d", len(nights), MaxSummaryDays)
	}
}
