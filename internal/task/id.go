package task

import "github.com/google/uuid"

// NewID returns a fresh collision-resistant task id. Random UUIDs are
// used instead of creation timestamps so that two tasks created within
// the same clock tick still get distinct ids.
func NewID() string {
	return uuid.NewString()
}
