package order

import "time"

// TableSession groups the orders of one table visit.
type TableSession struct {
	ID        string
	StoreID   string
	StartTime time.Time
	TableName *string
}

// Menu is a sellable item. BackAmount is the flat per-unit commission used
// when the cast's salary system has no rule for the item's fee category.
type Menu struct {
	ID           string
	StoreID      string
	Name         string
	Price        int64
	BackAmount   int64
	CategoryName *string
}

// OrderLine is one sold item. CastID is nil for lines not attributed to anyone.
type OrderLine struct {
	ID        string
	SessionID string
	CastID    *string
	MenuID    *string
	ItemName  string
	UnitPrice int64
	Quantity  int64
	Amount    int64
	CreatedAt time.Time
}
