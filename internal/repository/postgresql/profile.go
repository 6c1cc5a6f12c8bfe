package postgresql

import (
	"context"
	"fmt"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/database"
)

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepository{db: db}
}

// ListCommissionEligible returns the casts of a store.
func (r *profileRepository) ListCommissionEligible(ctx context.Context, storeID string) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, display_name, role, salary_system_id, created_at, updated_at
		FROM profiles
		WHERE store_id = $1 AND role = $2
		ORDER BY display_name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, storeID, string(profile.RoleCast))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var p profile.Profile
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.DisplayName, &p.Role, &p.SalarySystemID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}
