package service

import (
	"context"
	"fmt"

	"wagetrack/internal/clock"
	"wagetrack/internal/domain"
	"wagetrack/internal/repository"
)

type userService struct {
	store repository.Store
	clock clock.Clock
}

func NewUserService(store repository.Store, clk clock.Clock) UserService {
	return &userService{store: store, clock: clk}
}

func (s *userService) Ensure(ctx context.Context, userID string) error {
	if !domain.ValidUserID(userID) {
		return fmt.Errorf("user id must be 1-64 chars of [A-Za-z0-9_-]: %w", domain.ErrInvalidInput)
	}
	return s.store.Users().Upsert(ctx, &domain.User{ID: userID, CreatedAt: s.clock.Now()})
}
