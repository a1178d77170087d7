package domain

import "time"

// WorkSession is one clock-in/clock-out interval. HourlyWage is frozen at
// start time and immune to later WageSetting changes. EarnedAmount is
// computed once, when the session closes, and never silently recomputed.
type WorkSession struct {
	ID           int64
	UserID       string
	StartTime    time.Time
	EndTime      *time.Time
	HourlyWage   int
	EarnedAmount *int
}

// Open reports whether the session has not been stopped yet. At most one
// open session may exist per user at any instant.
func (s *WorkSession) Open() bool {
	return s.EndTime == nil
}

// ElapsedSeconds returns whole seconds between start and the given instant.
func (s *WorkSession) ElapsedSeconds(now time.Time) int64 {
	return int64(now.Sub(s.StartTime) / time.Second)
}

// EarnedBetween computes earnings for the given elapsed seconds at the
// session's frozen wage, rounding down to the nearest whole currency unit.
func (s *WorkSession) EarnedBetween(elapsedSeconds int64) int {
	return EarnedAmount(s.HourlyWage, elapsedSeconds)
}

// Close stamps the end time and fixes the earned amount.
func (s *WorkSession) Close(now time.Time) {
	end := now
	s.EndTime = &end
	earned := s.EarnedBetween(s.ElapsedSeconds(now))
	s.EarnedAmount = &earned
}

// EarnedAmount is floor(wage * elapsedSeconds / 3600). Integer-truncating
// division: earnings are never rounded up.
func EarnedAmount(hourlyWage int, elapsedSeconds int64) int {
	return int(int64(hourlyWage) * elapsedSeconds / 3600)
}

// CurrentView is a live, non-persisted projection of an open session.
type CurrentView struct {
	Session             *WorkSession
	ElapsedSeconds      int64
	CurrentEarnedAmount int
}
