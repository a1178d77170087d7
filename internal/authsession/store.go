// Package authsession maps login tokens to user identifiers. It carries
// identity only; the core performs no credential verification.
package authsession

import (
	"context"
	"time"
)

// Token binds a random identifier to a user until it expires.
type Token struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines how login tokens are stored and retrieved. Get returns
// (nil, nil) for an unknown or expired token.
type Store interface {
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, id string) (*Token, error)
	Delete(ctx context.Context, id string) error
}
