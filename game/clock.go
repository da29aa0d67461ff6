package game

import (
	"sync"
	"time"

	"github.com/lixenwraith/into-the-hole/parameter"
)

// Clock supplies wall time to the frame timer
type Clock interface {
	Now() time.Time
}

// SystemClock provides the real system time with monotonic clock readings
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// MockClock provides a controllable time source for testing
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance moves the mocked time forward
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// FrameTimer turns clock readings into clamped per-frame deltas
type FrameTimer struct {
	clock Clock
	last  time.Time
}

func NewFrameTimer(clock Clock) *FrameTimer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameTimer{clock: clock, last: clock.Now()}
}

// Tick returns seconds since the previous Tick, at most MaxFrameDelta
func (f *FrameTimer) Tick() float64 {
	now := f.clock.Now()
	dt := now.Sub(f.last).Seconds()
	f.last = now
	if dt < 0 {
		return 0
	}
	if dt > parameter.MaxFrameDelta {
		return parameter.MaxFrameDelta
	}
	return dt
}
