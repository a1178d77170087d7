package service

import (
	"context"
	"fmt"
	"time"

	"wagetrack/internal/domain"
	"wagetrack/internal/repository"
)

type summaryService struct {
	store repository.Store
}

func NewSummaryService(store repository.Store) SummaryService {
	return &summaryService{store: store}
}

func (s *summaryService) Daily(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error) {
	sessions, err := s.store.Sessions().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizeDay(sessions, date)
	return &summary, nil
}

func (s *summaryService) Monthly(ctx context.Context, userID string, year, month int) (*domain.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12: %w", domain.ErrInvalidInput)
	}
	sessions, err := s.store.Sessions().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizeMonth(sessions, year, time.Month(month))
	return &summary, nil
}
