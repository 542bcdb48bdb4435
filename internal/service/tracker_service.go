package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gobigbed/bigbed/internal/cache"
	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/motion"
	"github.com/gobigbed/bigbed/internal/repository"
	"github.com/gobigbed/bigbed/internal/session"
	"github.com/google/uuid"
)

// ReasonBelowMinimum is returned when a session ended cleanly but was too
// short to record.
const ReasonBelowMinimum = "below minimum session length"

// TrackerService drives one sleep-session state machine per user and
// applies the recording policy on top of it: sessions below the minimum
// floor are discarded, and a failed health-store write surfaces as a
// recoverable error without trapping the session in a running state.
type TrackerService interface {
	Start(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error)
	End(ctx context.Context, userID uuid.UUID) (*domain.EndSessionResponse, error)
	Abandon(ctx context.Context, userID uuid.UUID) error
	Snapshot(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error)
	IngestSamples(ctx context.Context, userID uuid.UUID, req *domain.MotionBatchRequest) (int, error)
	// Bootstrap resumes every persisted running session after a restart.
	Bootstrap(ctx context.Context) error
}

// TrackerConfig carries the session parameters shared by all machines.
type TrackerConfig struct {
	CutoffHour      int
	WindowStartHour int
	Motion          motion.Config
	Clock           session.Clock
	NewTicker       session.TickerFactory
}

type trackerService struct {
	cfg          TrackerConfig
	userRepo     repository.UserRepository
	intervalRepo repository.IntervalRepository
	stateRepo    repository.SessionStateRepository
	summaryCache *cache.SummaryCache

	mu      sync.Mutex
	entries map[uuid.UUID]*trackerEntry
}

// trackerEntry is the per-user session runtime: the machine, its sample
// feed, and the outcome of the most recent end.
type trackerEntry struct {
	machine *session.Machine
	feed    *motion.ChannelFeed

	mu             sync.Mutex
	lastOutcome    *domain.EndSessionResponse
	lastSaveError  string
	lastSavedStart *time.Time
	lastSavedEnd   *time.Time
}

func NewTrackerService(
	cfg TrackerConfig,
	userRepo repository.UserRepository,
	intervalRepo repository.IntervalRepository,
	stateRepo repository.SessionStateRepository,
	summaryCache *cache.SummaryCache,
) TrackerService {
	if cfg.Motion.SpikeThresholdG == 0 {
		cfg.Motion = motion.DefaultConfig()
	}
	return &trackerService{
		cfg:          cfg,
		userRepo:     userRepo,
		intervalRepo: intervalRepo,
		stateRepo:    stateRepo,
		summaryCache: summaryCache,
		entries:      make(map[uuid.UUID]*trackerEntry),
	}
}

func (s *trackerService) Start(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := s.entryFor(userID, user.Location())

	now := s.now()
	if !entry.machine.WithinAllowedWindow(now) {
		return nil, domain.ErrOutsideWindow
	}

	if err := entry.machine.Start(ctx); err != nil {
		return nil, err
	}
	return s.snapshot(entry, now), nil
}

func (s *trackerService) End(ctx context.Context, userID uuid.UUID) (*domain.EndSessionResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := s.entryFor(userID, user.Location())
	res := entry.machine.EndNow(ctx)
	if res == nil {
		return nil, domain.ErrSessionNotActive
	}

	// Recording happened synchronously in the session listener; return
	// the outcome it produced.
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.lastOutcome == nil {
		return nil, domain.ErrSessionNotActive
	}
	out := *entry.lastOutcome
	return &out, nil
}

func (s *trackerService) Abandon(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	s.entryFor(userID, user.Location()).machine.Abandon(ctx)
	return nil
}

func (s *trackerService) Snapshot(ctx context.Context, userID uuid.UUID) (*domain.SessionSnapshot, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry := s.entryFor(userID, user.Location())
	return s.snapshot(entry, s.now()), nil
}

func (s *trackerService) IngestSamples(ctx context.Context, userID uuid.UUID, req *domain.MotionBatchRequest) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	entry := s.entryFor(userID, user.Location())
	if !entry.machine.Snapshot().Running {
		return 0, domain.ErrSessionNotActive
	}

	accepted := 0
	now := s.now()
	for _, sm := range req.Samples {
		at := now
		if sm.At != nil {
			at = *sm.At
		}
		if entry.feed.Publish(motion.Sample{X: sm.X, Y: sm.Y, Z: sm.Z, At: at}) {
			accepted++
		}
	}
	return accepted, nil
}

func (s *trackerService) Bootstrap(ctx context.Context) error {
	recs, err := s.stateRepo.ListRunning(ctx)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		user, err := s.userRepo.GetByID(ctx, rec.UserID)
		if err != nil {
			log.Printf("bootstrap: skipping session for unknown user %s: %v", rec.UserID, err)
			continue
		}
		entry := s.entryFor(rec.UserID, user.Location())
		if err := entry.machine.Bootstrap(ctx); err != nil {
			log.Printf("bootstrap: could not resume session for user %s: %v", rec.UserID, err)
		}
	}
	return nil
}

// entryFor returns the per-user runtime, creating it on first use. The
// machine's listener owns all recording so every end path (manual, cutoff,
// violation) flows through the same policy.
func (s *trackerService) entryFor(userID uuid.UUID, loc *time.Location) *trackerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[userID]; ok {
		return entry
	}

	feed := motion.NewChannelFeed(0)
	entry := &trackerEntry{feed: feed}
	entry.machine = session.NewMachine(session.Config{
		CutoffHour:      s.cfg.CutoffHour,
		WindowStartHour: s.cfg.WindowStartHour,
		Location:        loc,
		Motion:          s.cfg.Motion,
		Clock:           s.cfg.Clock,
		NewTicker:       s.cfg.NewTicker,
	}, &userStateStore{repo: s.stateRepo, userID: userID}, motion.NewDetector(feed))

	entry.machine.Subscribe(func(ev session.Event) {
		switch ev.Type {
		case session.EventEnded:
			s.record(userID, entry, ev.Result)
		case session.EventAutoEnded:
			log.Printf("session for user %s auto-ended at cutoff (%s -> %s)",
				userID, ev.Result.Start.Format(time.RFC3339), ev.Result.EffectiveEnd.Format(time.RFC3339))
		case session.EventViolation:
			log.Printf("session for user %s ended by motion violation", userID)
		}
	})

	s.entries[userID] = entry
	return entry
}

// record applies the recording policy to an ended session and remembers
// the outcome for the snapshot surface.
func (s *trackerService) record(userID uuid.UUID, entry *trackerEntry, res *session.Result) {
	out := &domain.EndSessionResponse{
		StartAt:        res.Start,
		RawEndAt:       res.RawEnd,
		EffectiveEndAt: res.EffectiveEnd,
		Seconds:        res.Seconds,
	}

	switch {
	case res.Seconds < session.MinSessionSeconds:
		out.Reason = ReasonBelowMinimum
	default:
		interval := &domain.SleepInterval{
			UserID:   userID,
			StartAt:  res.Start.UTC(),
			EndAt:    res.EffectiveEnd.UTC(),
			Source:   domain.SourceApp,
			Category: domain.CategoryAsleepUnspecified,
		}
		// The listener runs off the request path for auto-ends, so use a
		// background context for the write.
		if err := s.intervalRepo.Create(context.Background(), interval); err != nil {
			out.Reason = "health store write failed"
			entry.mu.Lock()
			entry.lastSaveError = err.Error()
			entry.lastOutcome = out
			entry.mu.Unlock()
			log.Printf("failed to record session for user %s: %v", userID, err)
			return
		}
		out.Recorded = true
		s.summaryCache.Invalidate(context.Background(), userID)
	}

	entry.mu.Lock()
	entry.lastOutcome = out
	if out.Recorded {
		start, end := res.Start, res.EffectiveEnd
		entry.lastSavedStart = &start
		entry.lastSavedEnd = &end
		entry.lastSaveError = ""
	}
	entry.mu.Unlock()
}

func (s *trackerService) snapshot(entry *trackerEntry, now time.Time) *domain.SessionSnapshot {
	st := entry.machine.Snapshot()

	snap := &domain.SessionSnapshot{
		Running:        st.Running,
		ElapsedSeconds: st.Elapsed.Seconds(),
		Elapsed:        session.FormatElapsed(st.Elapsed),
		WithinWindow:   entry.machine.WithinAllowedWindow(now),
	}
	if st.Running {
		start := st.StartAt
		cutoff := st.CutoffAt
		snap.StartAt = &start
		snap.CutoffAt = &cutoff
	}

	entry.mu.Lock()
	snap.LastSaveError = entry.lastSaveError
	snap.LastSavedStart = entry.lastSavedStart
	snap.LastSavedEnd = entry.lastSavedEnd
	entry.mu.Unlock()

	return snap
}

func (s *trackerService) now() time.Time {
	if s.cfg.Clock != nil {
		return s.cfg.Clock.Now()
	}
	return time.Now()
}

// userStateStore binds the shared session-state repository to one user so
// the machine sees the two-key get/set/clear port from its point of view.
type userStateStore struct {
	repo   repository.SessionStateRepository
	userID uuid.UUID
}

func (s *userStateStore) Load(ctx context.Context) (bool, time.Time, error) {
	return s.repo.Load(ctx, s.userID)
}

func (s *userStateStore) Save(ctx context.Context, start time.Time) error {
	return s.repo.Save(ctx, s.userID, start)
}

func (s *userStateStore) Clear(ctx context.Context) error {
	err := s.repo.Clear(ctx, s.userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
