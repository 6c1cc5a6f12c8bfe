package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/validator"
)

const MaxWindowDays = 366

// ========== REQUEST DTOs ==========

type PayrollFilter struct {
	Days      int     `json:"days"`
	ProfileID *string `json:"profile_id,omitempty"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Days < 1 || f.Days > MaxWindowDays {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be between 1 and " + validator.Itoa(MaxWindowDays)})
	}
	if f.ProfileID != nil {
		if !validator.IsValidUUID(*f.ProfileID) {
			errs = append(errs, validator.ValidationError{Field: "profile_id", Message: "must be a valid UUID"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type HourlyDetailResponse struct {
	WorkedMinutes  int64  `json:"worked_minutes"`
	BilledMinutes  int64  `json:"billed_minutes"`
	HourlyRate     int64  `json:"hourly_rate"`
	RoundingUnit   int64  `json:"rounding_unit"`
	RoundingMethod string `json:"rounding_method"`
	OpenShift      bool   `json:"open_shift"`
}

type CommissionLineResponse struct {
	OrderID   string `json:"order_id"`
	SessionID string `json:"session_id"`
	TableName string `json:"table_name"`
	ItemName  string `json:"item_name"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Amount    int64  `json:"amount"`
}

type DeductionLineResponse struct {
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Amount     int64            `json:"amount"`
}

type PayrollRecordResponse struct {
	Date             string                   `json:"date"`
	Label            string                   `json:"label"`
	ProfileID        string                   `json:"profile_id"`
	ProfileName      string                   `json:"profile_name"`
	HourlyWage       int64                    `json:"hourly_wage"`
	HourlyDetail     HourlyDetailResponse     `json:"hourly_detail"`
	CommissionTotal  int64                    `json:"commission_total"`
	CommissionDetail []CommissionLineResponse `json:"commission_detail"`
	DeductionTotal   int64                    `json:"deduction_total"`
	DeductionDetail  []DeductionLineResponse  `json:"deduction_detail"`
	GrossTotal       int64                    `json:"gross_total"`
	NetTotal         int64                    `json:"net_total"`
	SalarySystemID   *string                  `json:"salary_system_id,omitempty"`
	SalarySystemName *string                  `json:"salary_system_name,omitempty"`
}

type PayrollResponse struct {
	BusinessDate string                  `json:"business_date"`
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	TodayTotal   int64                   `json:"today_total"`
	Records      []PayrollRecordResponse `json:"records"`
}

type TodaySummaryResponse struct {
	BusinessDate string `json:"business_date"`
	TodayTotal   int64  `json:"today_total"`
	RecordCount  int    `json:"record_count"`
}
