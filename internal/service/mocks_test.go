package service

import (
	"context"
	"sync"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
)

// mockUserRepo is an in-memory UserRepository.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

// mockIntervalRepo is an in-memory IntervalRepository.
type mockIntervalRepo struct {
	mu        sync.Mutex
	intervals []domain.SleepInterval
	createErr error
}

func (m *mockIntervalRepo) Create(ctx context.Context, interval *domain.SleepInterval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if interval.ID == uuid.Nil {
		interval.ID = uuid.New()
	}
	m.intervals = append(m.intervals, *interval)
	return nil
}

func (m *mockIntervalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.intervals {
		if m.intervals[i].ID == id {
			iv := m.intervals[i]
			return &iv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockIntervalRepo) List(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) ([]domain.SleepInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SleepInterval
	for _, iv := range m.intervals {
		if iv.UserID == userID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockIntervalRepo) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SleepInterval
	for _, iv := range m.intervals {
		if iv.UserID == userID && iv.StartAt.Before(to) && iv.EndAt.After(from) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockIntervalRepo) all() []domain.SleepInterval {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SleepInterval, len(m.intervals))
	copy(out, m.intervals)
	return out
}

// mockStateRepo is an in-memory SessionStateRepository.
type mockStateRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]domain.SessionStateRecord
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{records: make(map[uuid.UUID]domain.SessionStateRecord)}
}

func (m *mockStateRepo) Load(ctx context.Context, userID uuid.UUID) (bool, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok || !rec.IsRunning {
		return false, time.Time{}, nil
	}
	if rec.StartAt == nil {
		return true, time.Time{}, nil
	}
	return true, *rec.StartAt, nil
}

func (m *mockStateRepo) Save(ctx context.Context, userID uuid.UUID, start time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = domain.SessionStateRecord{UserID: userID, IsRunning: true, StartAt: &start}
	return nil
}

func (m *mockStateRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}

func (m *mockStateRepo) ListRunning(ctx context.Context) ([]domain.SessionStateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SessionStateRecord
	for _, rec := range m.records {
		if rec.IsRunning {
			out = append(out, rec)
		}
	}
	return out, nil
}

// mockRewardStateRepo is an in-memory RewardStateRepository.
type mockRewardStateRepo struct {
	mu      sync.Mutex
	credits map[uuid.UUID]int
}

func newMockRewardStateRepo() *mockRewardStateRepo {
	return &mockRewardStateRepo{credits: make(map[uuid.UUID]int)}
}

func (m *mockRewardStateRepo) LastNotifiedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credits[userID], nil
}

func (m *mockRewardStateRepo) SetLastNotifiedCredits(ctx context.Context, userID uuid.UUID, credits int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credits[userID] = credits
	return nil
}

// mockSummaryService returns canned nights.
type mockSummaryService struct {
	nights map[int][]domain.SleepDay
	err    error
}

func (m *mockSummaryService) LastNights(ctx context.Context, userID uuid.UUID, days int) ([]domain.SleepDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.nights[days], nil
}

// testClock is a settable clock shared with the session machines.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
