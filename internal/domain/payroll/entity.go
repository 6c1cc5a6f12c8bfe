package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
)

// FeeCategory enum
type FeeCategory string

const (
	FeeCategoryStore      FeeCategory = "store"
	FeeCategoryNomination FeeCategory = "nomination"
	FeeCategoryInHouse    FeeCategory = "in_house"
	FeeCategoryCompanion  FeeCategory = "companion"
)

// RoundingMethod enum
type RoundingMethod string

const (
	RoundingDown    RoundingMethod = "down"
	RoundingUp      RoundingMethod = "up"
	RoundingNearest RoundingMethod = "round"
)

// BackCalculationType enum
type BackCalculationType string

const (
	BackCalculationFixed           BackCalculationType = "fixed"
	BackCalculationTotalPercent    BackCalculationType = "total_percent"
	BackCalculationSubtotalPercent BackCalculationType = "subtotal_percent"
)

// DeductionType enum
type DeductionType string

const (
	DeductionTypeFixed      DeductionType = "fixed"
	DeductionTypePercentage DeductionType = "percentage"
)

// HourlySettings - normalized hourly wage configuration
type HourlySettings struct {
	Amount         int64 // yen per hour
	RoundingUnit   int64 // minutes
	RoundingMethod RoundingMethod
}

// BackRule - normalized commission rule for one fee category
type BackRule struct {
	Type           BackCalculationType
	FixedAmount    int64
	Percentage     decimal.Decimal
	RoundingUnit   int64 // yen, 0 = no rounding
	RoundingMethod RoundingMethod
}

// IsPercentage reports whether the rule is a percentage of the line amount.
func (r BackRule) IsPercentage() bool {
	return r.Type == BackCalculationTotalPercent || r.Type == BackCalculationSubtotalPercent
}

// DeductionRule - normalized deduction
type DeductionRule struct {
	Name       string
	Type       DeductionType
	Amount     int64
	Percentage decimal.Decimal
}

// SalarySystem - normalized commission configuration assigned to casts
type SalarySystem struct {
	ID         string
	StoreID    string
	Name       string
	Hourly     HourlySettings
	Backs      map[FeeCategory]*BackRule
	Deductions []DeductionRule
}

// BackFor returns the rule configured for category, or nil.
func (s *SalarySystem) BackFor(category FeeCategory) *BackRule {
	if s == nil || s.Backs == nil {
		return nil
	}
	return s.Backs[category]
}

// SalarySystemSettings is the stored form of a salary system.
// Every field of the JSON documents is optional and is coerced to defaults by the service.
type SalarySystemSettings struct {
	ID             string
	StoreID        string
	Name           string
	Hourly         *HourlySettingsDoc
	StoreBack      *BackSettingsDoc
	NominationBack *BackSettingsDoc
	InHouseBack    *BackSettingsDoc
	CompanionBack  *BackSettingsDoc
	Deductions     []DeductionDoc
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type HourlySettingsDoc struct {
	Amount         *int64  `json:"amount"`
	RoundingUnit   *int64  `json:"rounding_unit"`
	RoundingMethod *string `json:"rounding_method"`
}

type BackSettingsDoc struct {
	CalculationType *string          `json:"calculation_type"`
	FixedAmount     *int64           `json:"fixed_amount"`
	Percentage      *decimal.Decimal `json:"percentage"`
	RoundingUnit    *int64           `json:"rounding_unit"`
	RoundingMethod  *string          `json:"rounding_method"`
}

type DeductionDoc struct {
	Name       *string          `json:"name"`
	Type       *string          `json:"type"`
	Amount     *int64           `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage"`
}

// StoreSettings - per-store payroll related settings
type StoreSettings struct {
	StoreID       string
	DayChangeTime string // "HH:MM"
}

// Snapshot is the immutable input of one payroll computation.
type Snapshot struct {
	Profiles      []profile.Profile
	TimeCards     []attendance.TimeCard
	Sessions      []order.TableSession
	Menus         []order.Menu
	Orders        []order.OrderLine
	SalarySystems []SalarySystem
}

// HourlyDetail - how the hourly wage of a record was obtained
type HourlyDetail struct {
	WorkedMinutes  int64
	BilledMinutes  int64
	HourlyRate     int64
	RoundingUnit   int64
	RoundingMethod RoundingMethod
	OpenShift      bool
}

// CommissionLine - one itemized back
type CommissionLine struct {
	OrderID   string
	SessionID string
	TableName string
	ItemName  string
	Category  FeeCategory
	UnitPrice int64
	Quantity  int64
	Amount    int64
}

// DeductionLine - one itemized deduction, percentages resolved to yen
type DeductionLine struct {
	Name       string
	Type       DeductionType
	Percentage decimal.Decimal
	Amount     int64
}

// Record - payroll result of one cast on one business day
type Record struct {
	Date             time.Time
	DateKey          string
	Label            string
	ProfileID        string
	ProfileName      string
	HourlyWage       int64
	Hourly           HourlyDetail
	CommissionTotal  int64
	Commissions      []CommissionLine
	DeductionTotal   int64
	Deductions       []DeductionLine
	GrossTotal       int64
	NetTotal         int64
	SalarySystemID   *string
	SalarySystemName *string
}

// Result - output of one payroll computation
type Result struct {
	Records       []Record
	TodayTotal    int64
	BusinessToday time.Time
}
