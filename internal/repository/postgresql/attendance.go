package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ListByProfilesInRange returns the time cards of the given profiles whose
// work date falls in [from, to], both ends inclusive.
func (r *attendanceRepository) ListByProfilesInRange(ctx context.Context, storeID string, profileIDs []string, from, to time.Time) ([]attendance.TimeCard, error) {
	if len(profileIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, profile_id, store_id, work_date, clock_in, clock_out, created_at, updated_at
		FROM time_cards
		WHERE store_id = $1
			AND profile_id = ANY($2)
			AND work_date >= $3::date
			AND work_date <= $4::date
		ORDER BY work_date ASC, clock_in ASC NULLS LAST
	`

	rows, err := q.Query(ctx, query, storeID, profileIDs, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list time cards: %w", err)
	}
	defer rows.Close()

	var cards []attendance.TimeCard
	for rows.Next() {
		var c attendance.TimeCard
		if err := rows.Scan(
			&c.ID, &c.ProfileID, &c.StoreID, &c.WorkDate, &c.ClockIn, &c.ClockOut,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time card: %w", err)
		}
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time cards: %w", err)
	}

	return cards, nil
}
