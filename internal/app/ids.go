package app

import "github.com/google/uuid"

// newOrderID returns the opaque token embedded in scannable codes. IDs are
// generated once and never reused.
func newOrderID() string {
	return uuid.NewString()
}
