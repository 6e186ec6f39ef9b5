package domain

import "time"

// MerchItem is a sellable item offered by a drag.
type MerchItem struct {
	ID         int64     `json:"id"`
	DragID     int64     `json:"drag_id"`
	Name       string    `json:"name"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}
