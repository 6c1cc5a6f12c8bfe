package order

import (
	"context"
	"time"
)

// OrderRepository defines read access to sessions, order lines and menus.
type OrderRepository interface {
	// ListSessionsInRange returns the sessions of a store started in [from, to).
	ListSessionsInRange(ctx context.Context, storeID string, from, to time.Time) ([]TableSession, error)

	// ListOrdersBySessions returns the order lines of the given sessions attributed to one of castIDs.
	ListOrdersBySessions(ctx context.Context, sessionIDs []string, castIDs []string) ([]OrderLine, error)

	ListMenusByIDs(ctx context.Context, storeID string, ids []string) ([]Menu, error)
}
