package service

import (
	"context"
	"fmt"

	"wagetrack/internal/clock"
	"wagetrack/internal/domain"
	"wagetrack/internal/repository"
)

type wageService struct {
	store repository.Store
	clock clock.Clock
}

func NewWageService(store repository.Store, clk clock.Clock) WageService {
	return &wageService{store: store, clock: clk}
}

func (s *wageService) Get(ctx context.Context, userID string) (*domain.WageSetting, error) {
	return s.store.Wages().Get(ctx, userID)
}

func (s *wageService) Set(ctx context.Context, userID string, hourlyWage int) (*domain.WageSetting, error) {
	if hourlyWage <= 0 {
		return nil, fmt.Errorf("hourly wage must be positive: %w", domain.ErrInvalidInput)
	}
	w := &domain.WageSetting{
		UserID:     userID,
		HourlyWage: hourlyWage,
		UpdatedAt:  s.clock.Now(),
	}
	if err := s.store.Wages().Set(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
