package api

import "github.com/google/uuid"

// NewID returns a random identifier for scripts the provider left unnamed
// and for request correlation in logs.
func NewID() string {
	return uuid.NewString()
}
