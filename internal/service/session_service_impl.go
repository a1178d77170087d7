package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wagetrack/internal/clock"
	"wagetrack/internal/domain"
	"wagetrack/internal/repository"
)

type sessionService struct {
	store repository.Store
	clock clock.Clock
}

func NewSessionService(store repository.Store, clk clock.Clock) SessionService {
	return &sessionService{store: store, clock: clk}
}

// Start opens a new session at the current instant. The effective wage is
// the override when given, otherwise the user's current WageSetting; the
// resolved rate is frozen onto the session and later wage changes never
// touch it.
func (s *sessionService) Start(ctx context.Context, userID string, overrideWage *int) (*domain.WorkSession, error) {
	now := s.clock.Now()

	var session *domain.WorkSession
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		wage, err := resolveWage(ctx, r.Wages, userID, overrideWage)
		if err != nil {
			return err
		}
		session = &domain.WorkSession{
			UserID:     userID,
			StartTime:  now,
			HourlyWage: wage,
		}
		return r.Sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func resolveWage(ctx context.Context, wages repository.WageRepo, userID string, override *int) (int, error) {
	if override != nil {
		if *override <= 0 {
			return 0, fmt.Errorf("hourly wage must be positive: %w", domain.ErrInvalidInput)
		}
		return *override, nil
	}
	w, err := wages.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("hourly wage is not set: %w", domain.ErrInvalidInput)
		}
		return 0, err
	}
	return w.HourlyWage, nil
}

// Stop closes the session, stamping the end time and fixing the earned
// amount in one atomic write.
func (s *sessionService) Stop(ctx context.Context, userID string, id int64) (*domain.WorkSession, error) {
	now := s.clock.Now()

	var session *domain.WorkSession
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		found, err := r.Sessions.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if !found.Open() {
			return fmt.Errorf("already stopped: %w", domain.ErrConflict)
		}
		found.Close(now)
		if err := r.Sessions.Update(ctx, found); err != nil {
			return err
		}
		session = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Current returns a live projection of the open session: elapsed seconds so
// far and the amount earned at the frozen rate. Nothing is persisted.
func (s *sessionService) Current(ctx context.Context, userID string) (*domain.CurrentView, error) {
	session, err := s.store.Sessions().GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	elapsed := session.ElapsedSeconds(s.clock.Now())
	return &domain.CurrentView{
		Session:             session,
		ElapsedSeconds:      elapsed,
		CurrentEarnedAmount: session.EarnedBetween(elapsed),
	}, nil
}

func (s *sessionService) List(ctx context.Context, userID string, filter SessionFilter) ([]*domain.WorkSession, error) {
	sessions, err := s.store.Sessions().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if filter.Date == nil && filter.Month == 0 {
		return sessions, nil
	}
	filtered := make([]*domain.WorkSession, 0, len(sessions))
	for _, session := range sessions {
		if filter.Date != nil && !session.TouchesDate(*filter.Date) {
			continue
		}
		if filter.Month != 0 && !session.TouchesMonth(filter.Year, filter.Month) {
			continue
		}
		filtered = append(filtered, session)
	}
	return filtered, nil
}

// Update overwrites the given timestamp fields. When the edited session has
// both a start and an end, the earned amount is recomputed from its frozen
// wage so the stored figure always matches the stored interval.
func (s *sessionService) Update(ctx context.Context, userID string, id int64, newStart, newEnd *time.Time) (*domain.WorkSession, error) {
	if newStart == nil && newEnd == nil {
		return nil, fmt.Errorf("either start_time or end_time is required: %w", domain.ErrInvalidInput)
	}

	var session *domain.WorkSession
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		found, err := r.Sessions.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if newStart != nil {
			found.StartTime = newStart.UTC()
		}
		if newEnd != nil {
			end := newEnd.UTC()
			found.EndTime = &end
		}
		if found.EndTime != nil {
			earned := found.EarnedBetween(int64(found.EndTime.Sub(found.StartTime) / time.Second))
			found.EarnedAmount = &earned
		}
		if err := r.Sessions.Update(ctx, found); err != nil {
			return err
		}
		session = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, userID string, id int64) error {
	existed, err := s.store.Sessions().Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("work session: %w", domain.ErrNotFound)
	}
	return nil
}
