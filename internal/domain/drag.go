package domain

import "time"

// Drag is a merch seller profile.
type Drag struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}
