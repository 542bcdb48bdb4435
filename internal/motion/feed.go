package motion

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSource indicates no motion hardware or sample source is available.
// Callers must treat this as a hard failure: a session without motion
// monitoring has no anti-cheat guarantee.
var ErrNoSource = errors.New("no motion source available")

// Sample is a single 3-axis acceleration reading in g units.
type Sample struct {
	X  float64
	Y  float64
	Z  float64
	At time.Time
}

// Feed is a push source of acceleration samples. A feed delivers samples
// to exactly one active subscriber and never delivers concurrently.
type Feed interface {
	// Subscribe begins delivery at the requested rate. Returns ErrNoSource
	// when no sample source is available.
	Subscribe(hz float64, fn func(Sample)) error
	// Unsubscribe halts delivery. Always safe to call, idempotent.
	Unsubscribe()
}

// ChannelFeed is a Feed backed by an in-process channel. Producers push
// samples with Publish; a single dispatch goroutine delivers them in order.
type ChannelFeed struct {
	mu      sync.Mutex
	samples chan Sample
	stop    chan struct{}
	active  bool
}

// NewChannelFeed creates a feed buffering up to buffer undelivered samples.
func NewChannelFeed(buffer int) *ChannelFeed {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelFeed{
		samples: make(chan Sample, buffer),
	}
}

func (f *ChannelFeed) Subscribe(hz float64, fn func(Sample)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.active {
		f.stopLocked()
	}

	stop := make(chan struct{})
	f.stop = stop
	f.active = true

	go func() {
		for {
			select {
			case <-stop:
				return
			case s := <-f.samples:
				fn(s)
			}
		}
	}()
	return nil
}

func (f *ChannelFeed) Unsubscribe() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
}

func (f *ChannelFeed) stopLocked() {
	if !f.active {
		return
	}
	close(f.stop)
	f.stop = nil
	f.active = false
}

// Publish pushes a sample to the current subscriber. Samples arriving
// faster than they are consumed are dropped rather than blocking the
// producer. Returns false when the sample was dropped.
func (f *ChannelFeed) Publish(s Sample) bool {
	select {
	case f.samples <- s:
		return true
	default:
		return false
	}
}
