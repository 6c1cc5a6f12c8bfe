package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/database"
)

type orderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) order.OrderRepository {
	return &orderRepository{db: db}
}

// ========== SESSIONS ==========

func (r *orderRepository) ListSessionsInRange(ctx context.Context, storeID string, from, to time.Time) ([]order.TableSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, start_time, table_name
		FROM table_sessions
		WHERE store_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list table sessions: %w", err)
	}
	defer rows.Close()

	var sessions []order.TableSession
	for rows.Next() {
		var s order.TableSession
		if err := rows.Scan(&s.ID, &s.StoreID, &s.StartTime, &s.TableName); err != nil {
			return nil, fmt.Errorf("failed to scan table session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table sessions: %w", err)
	}

	return sessions, nil
}

// ========== ORDERS ==========

// ListOrdersBySessions returns the order lines of the sessions attributed to one of castIDs.
func (r *orderRepository) ListOrdersBySessions(ctx context.Context, sessionIDs, castIDs []string) ([]order.OrderLine, error) {
	if len(sessionIDs) == 0 || len(castIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, table_session_id, cast_id, menu_id, item_name, unit_price, quantity, amount, created_at
		FROM orders
		WHERE table_session_id = ANY($1) AND cast_id = ANY($2)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, sessionIDs, castIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var lines []order.OrderLine
	for rows.Next() {
		var o order.OrderLine
		if err := rows.Scan(
			&o.ID, &o.SessionID, &o.CastID, &o.MenuID, &o.ItemName,
			&o.UnitPrice, &o.Quantity, &o.Amount, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		lines = append(lines, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return lines, nil
}

// ========== MENUS ==========

func (r *orderRepository) ListMenusByIDs(ctx context.Context, storeID string, ids []string) ([]order.Menu, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, name, price, back_amount, category_name
		FROM menus
		WHERE store_id = $1 AND id = ANY($2)
	`

	rows, err := q.Query(ctx, query, storeID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []order.Menu
	for rows.Next() {
		var m order.Menu
		if err := rows.Scan(&m.ID, &m.StoreID, &m.Name, &m.Price, &m.BackAmount, &m.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menus: %w", err)
	}

	return menus, nil
}
