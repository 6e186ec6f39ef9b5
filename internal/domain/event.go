package domain

import "time"

// Event is a ticketed event. Capacity 0 means unlimited admission.
// TicketsSold is derived from the order ledger and is display-only;
// capacity decisions always re-sum the ledger.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	IsArchived  bool      `json:"is_archived"`
	TicketsSold int       `json:"tickets_sold"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sellable reports whether tickets can still be issued for the event.
func (e Event) Sellable(now time.Time) bool {
	return !e.IsArchived && e.Date.After(now)
}
