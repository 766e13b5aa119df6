package clock

import (
	"sync"
	"time"

	interfaces "supersimplestocks/internal/domain/interfaces"
)

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Manual is a settable clock for replays and tests.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

var (
	_ interfaces.Clock = Fixed{}
	_ interfaces.Clock = (*Manual)(nil)
)

// NewManual returns a Manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
