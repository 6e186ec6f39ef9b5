package domain

import "time"

// TicketOrder is a buyer's reservation against an event. Quantity is fixed at
// creation; redemption progress lives in the redemption ledger and is carried
// here as RedeemedCount when loaded.
type TicketOrder struct {
	ID            string    `json:"id"`
	EventID       int64     `json:"event_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Quantity      int       `json:"quantity"`
	RedeemedCount int       `json:"redeemed_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Available is the quantity not yet redeemed at the door.
func (o TicketOrder) Available() int {
	return o.Quantity - o.RedeemedCount
}

// BuyerName is the display name for the scanner fallback view.
func (o TicketOrder) BuyerName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.LastName
	}
}
