package usecase

import (
	"context"
	"time"
)

// SessionVelocityFilter penalizes sessions that transmitted too often.
type SessionVelocityFilter struct {
	threshold int
	failScore int
	window    time.Duration
}

var _ CustomFilter = (*SessionVelocityFilter)(nil)

func NewSessionVelocityFilter(threshold, failScore int, window time.Duration) *SessionVelocityFilter {
	return &SessionVelocityFilter{threshold: threshold, failScore: failScore, window: window}
}

func (f *SessionVelocityFilter) Name() string {
	return "session_velocity"
}

func (f *SessionVelocityFilter) Score(_ context.Context, fc FilterContext) int {
	recent := pruneStamps(fc.SessionVelocity(), fc.Now(), f.window)
	if len(recent) >= f.threshold {
		return f.failScore
	}
	return 0
}
