package domain

import "github.com/google/uuid"

// generateID creates a new unique identifier.
func generateID() string {
	return uuid.New().String()
}

// NewID returns a new unique identifier for entries created outside this package.
func NewID() string {
	return generateID()
}
