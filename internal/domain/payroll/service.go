package payroll

import "context"

// PayrollService computes payroll for the store of the authenticated user
type PayrollService interface {
	// GetPayroll computes every record of the trailing window
	GetPayroll(ctx context.Context, filter PayrollFilter) (PayrollResponse, error)

	// GetTodaySummary computes the same-day total only
	GetTodaySummary(ctx context.Context) (TodaySummaryResponse, error)
}
