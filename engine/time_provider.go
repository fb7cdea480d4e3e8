package engine

import "time"

// TimeProvider abstracts the wall clock so tests can control time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system clock with its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
