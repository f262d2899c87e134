package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - returns a random session identifier for a presenter.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsSessionID reports whether id looks like a value produced by GenerateNewSessionID.
func IsSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
