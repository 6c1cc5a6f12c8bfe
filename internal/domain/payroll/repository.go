package payroll

import "context"

// PayrollRepository defines data access methods for payroll configuration.
// All methods include storeID parameter to prevent cross-store data access.
type PayrollRepository interface {
	GetStoreSettings(ctx context.Context, storeID string) (StoreSettings, error)
	ListSalarySystems(ctx context.Context, storeID string) ([]SalarySystemSettings, error)
}
