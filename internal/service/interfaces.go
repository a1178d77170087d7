package service

import (
	"context"
	"time"

	"wagetrack/internal/domain"
)

type WageService interface {
	Get(ctx context.Context, userID string) (*domain.WageSetting, error)
	Set(ctx context.Context, userID string, hourlyWage int) (*domain.WageSetting, error)
}

// SessionFilter narrows a session listing to sessions whose start or end
// date falls on a calendar day or inside a calendar month (UTC bucketing).
// Zero value means no filtering.
type SessionFilter struct {
	Date  *time.Time
	Year  int
	Month time.Month
}

type SessionService interface {
	Start(ctx context.Context, userID string, overrideWage *int) (*domain.WorkSession, error)
	Stop(ctx context.Context, userID string, id int64) (*domain.WorkSession, error)
	Current(ctx context.Context, userID string) (*domain.CurrentView, error)
	List(ctx context.Context, userID string, filter SessionFilter) ([]*domain.WorkSession, error)
	Update(ctx context.Context, userID string, id int64, newStart, newEnd *time.Time) (*domain.WorkSession, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type SummaryService interface {
	Daily(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error)
	Monthly(ctx context.Context, userID string, year, month int) (*domain.MonthlySummary, error)
}

type UserService interface {
	// Ensure idempotently creates the user record on first use.
	Ensure(ctx context.Context, userID string) error
}
