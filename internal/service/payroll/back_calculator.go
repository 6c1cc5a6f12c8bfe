package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

var hundred = decimal.NewFromInt(100)

// CalculateBack returns the commission of one order line.
// Without a rule the menu's own back amount is paid per unit.
func CalculateBack(rule *payroll.BackRule, menu *order.Menu, unitPrice, quantity int64) int64 {
	if rule == nil {
		if menu == nil {
			return 0
		}
		return menu.BackAmount * quantity
	}

	var amount int64
	switch {
	case rule.Type == payroll.BackCalculationFixed:
		amount = rule.FixedAmount * quantity
	case rule.IsPercentage():
		amount = percentOf(unitPrice*quantity, rule.Percentage)
	}

	return RoundValue(amount, rule.RoundingUnit, rule.RoundingMethod)
}

// percentOf returns floor(base * pct / 100).
func percentOf(base int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(base).Mul(pct).Div(hundred).Floor().IntPart()
}
