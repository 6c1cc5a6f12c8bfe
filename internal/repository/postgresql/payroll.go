package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetStoreSettings(ctx context.Context, storeID string) (payroll.StoreSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT store_id, to_char(day_change_time, 'HH24:MI')
		FROM store_settings
		WHERE store_id = $1
	`

	var s payroll.StoreSettings
	err := q.QueryRow(ctx, query, storeID).Scan(&s.StoreID, &s.DayChangeTime)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.StoreSettings{}, payroll.ErrStoreSettingsNotFound
		}
		return payroll.StoreSettings{}, fmt.Errorf("failed to get store settings: %w", err)
	}

	return s, nil
}

// ========== SALARY SYSTEMS ==========

func (r *payrollRepository) ListSalarySystems(ctx context.Context, storeID string) ([]payroll.SalarySystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, name,
			   hourly_settings, store_back_settings, nomination_back_settings,
			   in_house_back_settings, companion_back_settings, deduction_settings,
			   created_at, updated_at
		FROM salary_systems
		WHERE store_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary systems: %w", err)
	}
	defer rows.Close()

	var systems []payroll.SalarySystemSettings
	for rows.Next() {
		var s payroll.SalarySystemSettings
		var hourlyJSON, storeBackJSON, nominationBackJSON, inHouseBackJSON, companionBackJSON, deductionsJSON []byte

		if err := rows.Scan(
			&s.ID, &s.StoreID, &s.Name,
			&hourlyJSON, &storeBackJSON, &nominationBackJSON,
			&inHouseBackJSON, &companionBackJSON, &deductionsJSON,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary system: %w", err)
		}

		s.Hourly = decodeSettingsDoc[payroll.HourlySettingsDoc](ctx, s.ID, "hourly_settings", hourlyJSON)
		s.StoreBack = decodeSettingsDoc[payroll.BackSettingsDoc](ctx, s.ID, "store_back_settings", storeBackJSON)
		s.NominationBack = decodeSettingsDoc[payroll.BackSettingsDoc](ctx, s.ID, "nomination_back_settings", nominationBackJSON)
		s.InHouseBack = decodeSettingsDoc[payroll.BackSettingsDoc](ctx, s.ID, "in_house_back_settings", inHouseBackJSON)
		s.CompanionBack = decodeSettingsDoc[payroll.BackSettingsDoc](ctx, s.ID, "companion_back_settings", companionBackJSON)
		if deductions := decodeSettingsDoc[[]payroll.DeductionDoc](ctx, s.ID, "deduction_settings", deductionsJSON); deductions != nil {
			s.Deductions = *deductions
		}

		systems = append(systems, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary systems: %w", err)
	}

	return systems, nil
}

// decodeSettingsDoc unmarshals a JSONB settings column. A malformed document is
// treated as absent so one bad row does not fail the whole computation.
func decodeSettingsDoc[T any](ctx context.Context, systemID, column string, raw []byte) *T {
	if len(raw) == 0 {
		return nil
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.WarnContext(ctx, "Ignoring malformed salary system settings",
			"salary_system_id", systemID,
			"column", column,
			"error", err,
		)
		return nil
	}
	return &doc
}
