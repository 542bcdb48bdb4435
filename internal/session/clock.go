package session

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads so tests can drive time explicitly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Ticker is a cancellable repeating timer handle.
type Ticker interface {
	Stop()
}

// TickerFactory creates a ticker invoking fn every interval until stopped.
type TickerFactory func(interval time.Duration, fn func()) Ticker

type systemTicker struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func (s *systemTicker) Stop() {
	s.t.Stop()
	s.once.Do(func() { close(s.done) })
}

// NewSystemTicker is the production TickerFactory, backed by time.Ticker.
func NewSystemTicker(interval time.Duration, fn func()) Ticker {
	st := &systemTicker{
		t:    time.NewTicker(interval),
		done: make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-st.done:
				return
			case <-st.t.C:
				fn()
			}
		}
	}()
	return st
}
