package attendance

import (
	"time"
)

// TimeCard is one clock-in/clock-out pair.
// ClockOut is nil while the cast is still on shift.
type TimeCard struct {
	ID        string
	ProfileID string
	StoreID   string
	WorkDate  time.Time
	ClockIn   *time.Time
	ClockOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the card has a clock-in but no clock-out yet.
func (c TimeCard) IsOpen() bool {
	return c.ClockIn != nil && c.ClockOut == nil
}
