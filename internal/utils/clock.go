package utils

import "time"

// Clock abstracts time.Now so that due-date checks and forecasts can be
// tested against a fixed point in time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock used in production.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock reports FixedNow until it is moved with SetNow or Advance.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}
