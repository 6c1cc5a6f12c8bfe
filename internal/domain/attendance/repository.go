package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for time cards.
// All methods include storeID parameter to prevent cross-store data access.
type AttendanceRepository interface {
	// ListByProfilesInRange returns the time cards of the given profiles whose work date falls in [from, to].
	ListByProfilesInRange(ctx context.Context, storeID string, profileIDs []string, from, to time.Time) ([]TimeCard, error)
}
