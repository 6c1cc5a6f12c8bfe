package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

const defaultDeductionName = "控除"

// NormalizeSalarySystem coerces stored settings into well-formed engine settings.
// The calculation code assumes its output and never re-checks.
func NormalizeSalarySystem(s payroll.SalarySystemSettings) payroll.SalarySystem {
	backs := make(map[payroll.FeeCategory]*payroll.BackRule)
	for category, doc := range map[payroll.FeeCategory]*payroll.BackSettingsDoc{
		payroll.FeeCategoryStore:      s.StoreBack,
		payroll.FeeCategoryNomination: s.NominationBack,
		payroll.FeeCategoryInHouse:    s.InHouseBack,
		payroll.FeeCategoryCompanion:  s.CompanionBack,
	} {
		if rule := normalizeBackRule(doc); rule != nil {
			backs[category] = rule
		}
	}

	deductions := make([]payroll.DeductionRule, 0, len(s.Deductions))
	for _, d := range s.Deductions {
		if rule, ok := normalizeDeduction(d); ok {
			deductions = append(deductions, rule)
		}
	}

	return payroll.SalarySystem{
		ID:         s.ID,
		StoreID:    s.StoreID,
		Name:       s.Name,
		Hourly:     normalizeHourly(s.Hourly),
		Backs:      backs,
		Deductions: deductions,
	}
}

func normalizeHourly(doc *payroll.HourlySettingsDoc) payroll.HourlySettings {
	hs := payroll.HourlySettings{
		RoundingUnit:   DefaultTimeRoundingUnit,
		RoundingMethod: payroll.RoundingNearest,
	}
	if doc == nil {
		return hs
	}
	hs.Amount = nonNegative(doc.Amount)
	if doc.RoundingUnit != nil && *doc.RoundingUnit > 0 {
		hs.RoundingUnit = *doc.RoundingUnit
	}
	hs.RoundingMethod = normalizeRoundingMethod(doc.RoundingMethod)
	return hs
}

func normalizeBackRule(doc *payroll.BackSettingsDoc) *payroll.BackRule {
	if doc == nil || doc.CalculationType == nil {
		return nil
	}

	rule := &payroll.BackRule{
		FixedAmount:    nonNegative(doc.FixedAmount),
		Percentage:     nonNegativeDecimal(doc.Percentage),
		RoundingMethod: normalizeRoundingMethod(doc.RoundingMethod),
	}
	switch t := payroll.BackCalculationType(strings.TrimSpace(*doc.CalculationType)); t {
	case payroll.BackCalculationFixed, payroll.BackCalculationTotalPercent, payroll.BackCalculationSubtotalPercent:
		rule.Type = t
	default:
		return nil
	}
	if doc.RoundingUnit != nil && *doc.RoundingUnit > 0 {
		rule.RoundingUnit = *doc.RoundingUnit
	}
	return rule
}

func normalizeDeduction(doc payroll.DeductionDoc) (payroll.DeductionRule, bool) {
	if doc.Type == nil {
		return payroll.DeductionRule{}, false
	}

	rule := payroll.DeductionRule{
		Name:       defaultDeductionName,
		Amount:     nonNegative(doc.Amount),
		Percentage: nonNegativeDecimal(doc.Percentage),
	}
	switch t := payroll.DeductionType(strings.TrimSpace(*doc.Type)); t {
	case payroll.DeductionTypeFixed, payroll.DeductionTypePercentage:
		rule.Type = t
	default:
		return payroll.DeductionRule{}, false
	}
	if doc.Name != nil && strings.TrimSpace(*doc.Name) != "" {
		rule.Name = strings.TrimSpace(*doc.Name)
	}
	return rule, true
}

func normalizeRoundingMethod(m *string) payroll.RoundingMethod {
	if m == nil {
		return payroll.RoundingNearest
	}
	switch method := payroll.RoundingMethod(strings.TrimSpace(*m)); method {
	case payroll.RoundingDown, payroll.RoundingUp:
		return method
	default:
		return payroll.RoundingNearest
	}
}

func nonNegative(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func nonNegativeDecimal(v *decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsNegative() {
		return decimal.Zero
	}
	return *v
}
