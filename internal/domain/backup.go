package domain

// Backup is the self-consistent snapshot exchanged by the backup/restore
// gateway. The three sections are the same JSON shapes the store holds, so a
// snapshot round-trips through Restore unchanged except for derived counters.
type Backup struct {
	Catalog     *BackupCatalog `json:"catalog"`
	Orders      *BackupOrders  `json:"orders"`
	Redemptions []Redemption   `json:"redemptions"`
}

type BackupCatalog struct {
	Events     []Event     `json:"events"`
	Drags      []Drag      `json:"drags"`
	MerchItems []MerchItem `json:"merch_items"`
}

type BackupOrders struct {
	Tickets    []TicketOrder `json:"tickets"`
	MerchSales []MerchSale   `json:"merch_sales"`
}
