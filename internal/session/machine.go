// Package session owns the sleep-session lifecycle: an unattended
// overnight timer that persists across process restarts, auto-ends at a
// cutoff boundary, and aborts when the motion guard reports a violation.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gobigbed/bigbed/internal/motion"
)

const (
	// DefaultWindowStartHour is the local hour from which a session may be
	// started (through the night until the cutoff hour).
	DefaultWindowStartHour = 20

	// DefaultTickInterval drives elapsed-time updates and the cutoff check.
	DefaultTickInterval = time.Second

	// MinSessionSeconds is the policy floor below which callers treat a
	// completed session as not worth recording. Surfaced via Result.Seconds,
	// never enforced here.
	MinSessionSeconds = 30 * 60
)

// Guard is the anti-cheat monitor the machine arms while running.
type Guard interface {
	Start(cfg motion.Config, onViolation func()) error
	Stop()
}

// Result describes an ended session. EffectiveEnd is RawEnd clamped to the
// cutoff boundary; Seconds is the credited length.
type Result struct {
	Start        time.Time
	RawEnd       time.Time
	EffectiveEnd time.Time
	Seconds      float64
}

// EventType tags a session transition notification.
type EventType string

const (
	// EventStarted fires when a session begins.
	EventStarted EventType = "started"
	// EventEnded fires exactly once on every end path.
	EventEnded EventType = "ended"
	// EventAutoEnded additionally fires when the tick hit the cutoff.
	EventAutoEnded EventType = "auto_ended"
	// EventViolation additionally fires when the motion guard ended the session.
	EventViolation EventType = "violation"
)

// Event is a state-change notification delivered to listeners.
type Event struct {
	Type   EventType
	Start  time.Time
	Result *Result
}

// Listener receives session events. Delivery is synchronous on the
// goroutine that caused the transition; listeners must not block.
type Listener func(Event)

// Config parameterizes a Machine. Zero fields take defaults.
type Config struct {
	CutoffHour      int
	WindowStartHour int
	Location        *time.Location
	TickInterval    time.Duration
	Motion          motion.Config
	Clock           Clock
	NewTicker       TickerFactory
}

// Machine is the session state machine. Exactly one instance is live per
// user; all state mutations are linearized through its mutex, so a motion
// violation can never race a user-driven end.
type Machine struct {
	cutoffHour      int
	windowStartHour int
	loc             *time.Location
	tickInterval    time.Duration
	motionCfg       motion.Config
	clock           Clock
	newTicker       TickerFactory
	store           StateStore
	guard           Guard

	mu        sync.Mutex
	running   bool
	startAt   time.Time
	elapsed   time.Duration
	ticker    Ticker
	listeners []Listener
}

func NewMachine(cfg Config, store StateStore, guard Guard) *Machine {
	if cfg.CutoffHour <= 0 {
		cfg.CutoffHour = 12
	}
	if cfg.WindowStartHour <= 0 {
		cfg.WindowStartHour = DefaultWindowStartHour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.Motion.SpikeThresholdG == 0 {
		cfg.Motion = motion.DefaultConfig()
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewSystemTicker
	}

	return &Machine{
		cutoffHour:      cfg.CutoffHour,
		windowStartHour: cfg.WindowStartHour,
		loc:             cfg.Location,
		tickInterval:    cfg.TickInterval,
		motionCfg:       cfg.Motion,
		clock:           cfg.Clock,
		newTicker:       cfg.NewTicker,
		store:           store,
		guard:           guard,
	}
}

// Subscribe registers a listener for session events.
func (m *Machine) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// WithinAllowedWindow reports whether a session may be started at now:
// from the window start hour through the night until the cutoff hour.
func (m *Machine) WithinAllowedWindow(now time.Time) bool {
	h := now.In(m.loc).Hour()
	return h >= m.windowStartHour || h < m.cutoffHour
}

// CutoffDate is the hard boundary for a session started at start: the
// cutoff hour the same day when the session began before it, otherwise the
// cutoff hour the next day.
func (m *Machine) CutoffDate(start time.Time) time.Time {
	lt := start.In(m.loc)
	base := lt
	if lt.Hour() >= m.cutoffHour {
		base = lt.AddDate(0, 0, 1)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), m.cutoffHour, 0, 0, 0, m.loc)
}

// Start begins a session. No-op when already running. The start time is
// persisted before the machine reports running, and a motion guard that
// cannot start fails the whole operation: a session without anti-cheat
// protection never starts.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}

	now := m.clock.Now()
	if err := m.store.Save(ctx, now); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("persist session start: %w", err)
	}

	m.running = true
	m.startAt = now
	m.elapsed = 0
	m.startTickerLocked()

	if err := m.guard.Start(m.motionCfg, m.onViolation); err != nil {
		m.stopTickerLocked()
		m.running = false
		m.startAt = time.Time{}
		_ = m.store.Clear(ctx)
		m.mu.Unlock()
		return err
	}

	m.mu.Unlock()
	m.emit(Event{Type: EventStarted, Start: now})
	return nil
}

// EndNow ends the running session and returns its result, or nil when
// idle. Idempotent after the first call.
func (m *Machine) EndNow(ctx context.Context) *Result {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	res := m.endLocked(ctx)
	m.mu.Unlock()

	m.emit(Event{Type: EventEnded, Start: res.Start, Result: res})
	return res
}

// Abandon ends the session and discards the result. Used when the process
// is forced down while running.
func (m *Machine) Abandon(ctx context.Context) {
	_ = m.EndNow(ctx)
}

// Bootstrap restores a persisted session after a process restart. A running
// flag without a start time is inconsistent and falls back to idle.
func (m *Machine) Bootstrap(ctx context.Context) error {
	m.mu.Lock()

	running, start, err := m.store.Load(ctx)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("load session state: %w", err)
	}
	if !running {
		m.mu.Unlock()
		return nil
	}
	if start.IsZero() {
		_ = m.store.Clear(ctx)
		m.mu.Unlock()
		return nil
	}

	m.running = true
	m.startAt = start
	m.elapsed = m.clock.Now().Sub(start)
	m.startTickerLocked()

	// The guard re-arms its delay from zero here, same as a fresh start.
	if err := m.guard.Start(m.motionCfg, m.onViolation); err != nil {
		res := m.endLocked(ctx)
		m.mu.Unlock()
		m.emit(Event{Type: EventEnded, Start: res.Start, Result: res})
		return fmt.Errorf("resume session: %w", err)
	}

	m.mu.Unlock()
	return nil
}

// EnterBackground suspends the tick without altering session state.
func (m *Machine) EnterBackground() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTickerLocked()
}

// EnterForeground recomputes elapsed from the persisted start and restarts
// the tick. No-op when idle.
func (m *Machine) EnterForeground() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.elapsed = m.clock.Now().Sub(m.startAt)
	m.startTickerLocked()
}

// State is a point-in-time view of the machine.
type State struct {
	Running  bool
	StartAt  time.Time
	Elapsed  time.Duration
	CutoffAt time.Time
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := State{
		Running: m.running,
		StartAt: m.startAt,
		Elapsed: m.elapsed,
	}
	if m.running {
		st.CutoffAt = m.CutoffDate(m.startAt)
	}
	return st
}

func (m *Machine) tick() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	now := m.clock.Now()
	m.elapsed = now.Sub(m.startAt)

	if now.Before(m.CutoffDate(m.startAt)) {
		m.mu.Unlock()
		return
	}

	res := m.endLocked(context.Background())
	m.mu.Unlock()

	m.emit(Event{Type: EventEnded, Start: res.Start, Result: res})
	m.emit(Event{Type: EventAutoEnded, Start: res.Start, Result: res})
}

func (m *Machine) onViolation() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	res := m.endLocked(context.Background())
	m.mu.Unlock()

	m.emit(Event{Type: EventEnded, Start: res.Start, Result: res})
	m.emit(Event{Type: EventViolation, Start: res.Start, Result: res})
}

func (m *Machine) endLocked(ctx context.Context) *Result {
	rawEnd := m.clock.Now()
	effectiveEnd := rawEnd
	if cutoff := m.CutoffDate(m.startAt); cutoff.Before(effectiveEnd) {
		effectiveEnd = cutoff
	}
	seconds := effectiveEnd.Sub(m.startAt).Seconds()
	if seconds < 0 {
		seconds = 0
	}

	res := &Result{
		Start:        m.startAt,
		RawEnd:       rawEnd,
		EffectiveEnd: effectiveEnd,
		Seconds:      seconds,
	}

	m.running = false
	m.startAt = time.Time{}
	m.elapsed = 0
	_ = m.store.Clear(ctx)
	m.stopTickerLocked()
	m.guard.Stop()

	return res
}

func (m *Machine) startTickerLocked() {
	m.stopTickerLocked()
	m.ticker = m.newTicker(m.tickInterval, m.tick)
}

func (m *Machine) stopTickerLocked() {
	if m.ticker != nil {
		m.ticker.Stop()
		m.ticker = nil
	}
}

func (m *Machine) emit(ev Event) {
	m.mu.Lock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// FormatElapsed renders a duration as HH:MM:SS for session displays.
func FormatElapsed(d time.Duration) string {
	s := int(d.Seconds())
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
