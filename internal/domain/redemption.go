package domain

import "time"

// Redemption is one row of the redemption ledger: how much of a ticket order
// has been used at the door. An order without a row has RedeemedCount 0.
type Redemption struct {
	OrderID       string    `json:"order_id"`
	RedeemedCount int       `json:"redeemed_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}
