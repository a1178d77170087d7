package domain

import (
	"regexp"
	"time"
)

// User is an opaque partition key for wage and session state. The core
// performs no credential verification; the identifier is trusted as-is.
type User struct {
	ID        string
	CreatedAt time.Time
}

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidUserID reports whether id is alphanumeric plus _/-, 1 to 64 chars.
func ValidUserID(id string) bool {
	return userIDPattern.MatchString(id)
}
