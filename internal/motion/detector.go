// Package motion implements the anti-cheat motion detector that watches
// accelerometer samples while a sleep session is running and flags the
// session when the phone is handled too much.
package motion

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Config holds the spike detection parameters.
type Config struct {
	// SpikeThresholdG is the acceleration magnitude above which a sample
	// counts as a spike.
	SpikeThresholdG float64
	// MinSpikeCount is the number of spikes within Horizon that trigger
	// a violation.
	MinSpikeCount int
	// Horizon is the sliding window length.
	Horizon time.Duration
	// SampleRateHz is the requested sample delivery rate.
	SampleRateHz float64
	// ArmingDelay is the grace period after Start during which samples are
	// ignored, so setting the phone down does not count against the user.
	ArmingDelay time.Duration
}

// DefaultConfig returns the detection profile used for overnight sessions.
func DefaultConfig() Config {
	return Config{
		SpikeThresholdG: 1.05,
		MinSpikeCount:   4,
		Horizon:         10 * time.Second,
		SampleRateHz:    40,
		ArmingDelay:     10 * time.Second,
	}
}

// Detector consumes a sample feed and fires a violation callback at most
// once per Start when enough spikes land inside the horizon. After a
// violation it stops itself; no further samples are processed.
type Detector struct {
	feed Feed
	now  func() time.Time

	mu          sync.Mutex
	cfg         Config
	spikes      []time.Time
	onViolation func()
	monitoring  bool
	startedAt   time.Time
}

func NewDetector(feed Feed) *Detector {
	return &Detector{
		feed: feed,
		now:  time.Now,
	}
}

// Start begins consuming the feed. A hard error is returned when the feed
// has no sample source: silently disabling anti-cheat would let the caller
// believe protection is active when it is not.
func (d *Detector) Start(cfg Config, onViolation func()) error {
	d.Stop()

	d.mu.Lock()
	d.cfg = cfg
	d.onViolation = onViolation
	d.spikes = nil
	d.monitoring = true
	d.startedAt = d.now()
	d.mu.Unlock()

	if err := d.feed.Subscribe(cfg.SampleRateHz, func(s Sample) {
		d.HandleSample(s.X, s.Y, s.Z, s.At)
	}); err != nil {
		d.Stop()
		return fmt.Errorf("start motion monitoring: %w", err)
	}
	return nil
}

// Stop halts monitoring and clears all spike state. Idempotent and safe to
// call at any time, including before any Start and from within the
// violation callback.
func (d *Detector) Stop() {
	d.mu.Lock()
	d.monitoring = false
	d.spikes = nil
	d.onViolation = nil
	d.startedAt = time.Time{}
	d.mu.Unlock()

	d.feed.Unsubscribe()
}

// HandleSample processes one acceleration sample. Exposed so tests and
// batch ingest paths can drive the detector without a live feed.
func (d *Detector) HandleSample(x, y, z float64, at time.Time) {
	d.mu.Lock()

	if !d.monitoring {
		d.mu.Unlock()
		return
	}
	if at.Sub(d.startedAt) < d.cfg.ArmingDelay {
		d.mu.Unlock()
		return
	}

	mag := math.Sqrt(x*x + y*y + z*z)
	if mag < d.cfg.SpikeThresholdG {
		d.mu.Unlock()
		return
	}

	d.spikes = append(d.spikes, at)

	// Prune spikes older than the horizon.
	cutoff := at.Add(-d.cfg.Horizon)
	kept := d.spikes[:0]
	for _, t := range d.spikes {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	d.spikes = kept

	if len(d.spikes) < d.cfg.MinSpikeCount {
		d.mu.Unlock()
		return
	}

	// Violation: fire once and self-terminate.
	cb := d.onViolation
	d.monitoring = false
	d.spikes = nil
	d.onViolation = nil
	d.mu.Unlock()

	d.feed.Unsubscribe()
	if cb != nil {
		cb()
	}
}

// Monitoring reports whether the detector is currently armed or arming.
func (d *Detector) Monitoring() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.monitoring
}
