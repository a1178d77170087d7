package testutil

import (
	"time"

	"wagetrack/internal/domain"
)

// BaseTime is an arbitrary fixed instant used by deterministic tests.
var BaseTime = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

// SessionOption customizes a test session.
type SessionOption func(*domain.WorkSession)

// NewTestSession builds an open session starting at BaseTime.
func NewTestSession(userID string, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		UserID:     userID,
		StartTime:  BaseTime,
		HourlyWage: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func WithStart(t time.Time) SessionOption {
	return func(s *domain.WorkSession) { s.StartTime = t }
}

func WithWage(wage int) SessionOption {
	return func(s *domain.WorkSession) { s.HourlyWage = wage }
}

// Closed stamps an end time and the earned amount for the elapsed interval.
func Closed(end time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.Close(end)
	}
}

// NewTestWage builds a wage setting stamped at BaseTime.
func NewTestWage(userID string, hourlyWage int) *domain.WageSetting {
	return &domain.WageSetting{
		UserID:     userID,
		HourlyWage: hourlyWage,
		UpdatedAt:  BaseTime,
	}
}
