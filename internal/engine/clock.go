package engine

import (
	"sync"
	"time"
)

// Clock is the time source for deadline-driven components.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall time with a monotonic component.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. The simulation driver advances it by
// the tick delta; tests advance it explicitly.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// AdvanceSeconds advances by a frame delta expressed in seconds.
func (m *ManualClock) AdvanceSeconds(dt float32) {
	m.Advance(Seconds(dt))
}

// Seconds converts a float seconds value to a Duration.
func Seconds(s float32) time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
