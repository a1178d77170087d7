package domain

import "time"

// WageSetting is the current hourly rate for a user. There is exactly one
// per user and it is overwritten wholesale on update; no history is kept.
type WageSetting struct {
	UserID     string
	HourlyWage int
	UpdatedAt  time.Time
}
