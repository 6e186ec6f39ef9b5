package domain

import "time"

// MerchSale is a merch reservation. Unlike ticket orders it is redeemed as an
// indivisible unit: Fulfilled flips once when the full quantity is handed over.
type MerchSale struct {
	ID        string    `json:"id"`
	ItemID    int64     `json:"item_id"`
	DragID    int64     `json:"drag_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Quantity  int       `json:"quantity"`
	Fulfilled bool      `json:"fulfilled"`
	CreatedAt time.Time `json:"created_at"`
}

// BuyerName is the display name printed into the scannable code.
func (s MerchSale) BuyerName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	default:
		return s.FirstName + " " + s.LastName
	}
}
