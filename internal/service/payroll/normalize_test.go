package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeSalarySystem_Empty(t *testing.T) {
	got := NormalizeSalarySystem(payroll.SalarySystemSettings{ID: "sys-1", Name: "Standard"})

	assert.Equal(t, "sys-1", got.ID)
	assert.Equal(t, payroll.HourlySettings{
		Amount:         0,
		RoundingUnit:   DefaultTimeRoundingUnit,
		RoundingMethod: payroll.RoundingNearest,
	}, got.Hourly)
	assert.Empty(t, got.Backs)
	assert.Empty(t, got.Deductions)
	assert.Nil(t, got.BackFor(payroll.FeeCategoryStore))
}

func TestNormalizeSalarySystem_Hourly(t *testing.T) {
	tests := []struct {
		name string
		doc  *payroll.HourlySettingsDoc
		want payroll.HourlySettings
	}{
		{
			name: "complete settings",
			doc:  &payroll.HourlySettingsDoc{Amount: ptr(int64(2000)), RoundingUnit: ptr(int64(15)), RoundingMethod: ptr("down")},
			want: payroll.HourlySettings{Amount: 2000, RoundingUnit: 15, RoundingMethod: payroll.RoundingDown},
		},
		{
			name: "non positive unit falls back to an hour",
			doc:  &payroll.HourlySettingsDoc{Amount: ptr(int64(1500)), RoundingUnit: ptr(int64(0)), RoundingMethod: ptr("up")},
			want: payroll.HourlySettings{Amount: 1500, RoundingUnit: 60, RoundingMethod: payroll.RoundingUp},
		},
		{
			name: "negative amount and unknown method",
			doc:  &payroll.HourlySettingsDoc{Amount: ptr(int64(-100)), RoundingMethod: ptr("ceil")},
			want: payroll.HourlySettings{Amount: 0, RoundingUnit: 60, RoundingMethod: payroll.RoundingNearest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSalarySystem(payroll.SalarySystemSettings{Hourly: tt.doc})
			assert.Equal(t, tt.want, got.Hourly)
		})
	}
}

func TestNormalizeSalarySystem_Backs(t *testing.T) {
	pct := decimal.NewFromInt(10)
	negative := decimal.NewFromInt(-5)

	got := NormalizeSalarySystem(payroll.SalarySystemSettings{
		StoreBack: &payroll.BackSettingsDoc{
			CalculationType: ptr("total_percent"),
			Percentage:      &pct,
		},
		NominationBack: &payroll.BackSettingsDoc{
			CalculationType: ptr("fixed"),
			FixedAmount:     ptr(int64(1000)),
			RoundingUnit:    ptr(int64(100)),
			RoundingMethod:  ptr("up"),
		},
		InHouseBack: &payroll.BackSettingsDoc{
			CalculationType: ptr("bonus"),
			FixedAmount:     ptr(int64(500)),
		},
		CompanionBack: &payroll.BackSettingsDoc{
			CalculationType: ptr("subtotal_percent"),
			Percentage:      &negative,
		},
	})

	store := got.BackFor(payroll.FeeCategoryStore)
	require.NotNil(t, store)
	assert.Equal(t, payroll.BackCalculationTotalPercent, store.Type)
	assert.True(t, store.Percentage.Equal(pct))
	assert.Equal(t, int64(0), store.RoundingUnit)
	assert.Equal(t, payroll.RoundingNearest, store.RoundingMethod)

	nomination := got.BackFor(payroll.FeeCategoryNomination)
	require.NotNil(t, nomination)
	assert.Equal(t, int64(1000), nomination.FixedAmount)
	assert.Equal(t, int64(100), nomination.RoundingUnit)
	assert.Equal(t, payroll.RoundingUp, nomination.RoundingMethod)

	assert.Nil(t, got.BackFor(payroll.FeeCategoryInHouse), "unknown calculation type has no rule")

	companion := got.BackFor(payroll.FeeCategoryCompanion)
	require.NotNil(t, companion)
	assert.True(t, companion.Percentage.IsZero())
}

func TestNormalizeSalarySystem_Deductions(t *testing.T) {
	pct := decimal.NewFromInt(5)

	got := NormalizeSalarySystem(payroll.SalarySystemSettings{
		Deductions: []payroll.DeductionDoc{
			{Name: ptr("厚生費"), Type: ptr("fixed"), Amount: ptr(int64(500))},
			{Name: ptr("  "), Type: ptr("percentage"), Percentage: &pct},
			{Name: ptr("unknown"), Type: ptr("tax")},
			{Name: ptr("untyped"), Amount: ptr(int64(100))},
			{Type: ptr("fixed"), Amount: ptr(int64(-300))},
		},
	})

	require.Len(t, got.Deductions, 3)
	assert.Equal(t, payroll.DeductionRule{Name: "厚生費", Type: payroll.DeductionTypeFixed, Amount: 500, Percentage: decimal.Zero}, got.Deductions[0])
	assert.Equal(t, defaultDeductionName, got.Deductions[1].Name)
	assert.Equal(t, payroll.DeductionTypePercentage, got.Deductions[1].Type)
	assert.True(t, got.Deductions[1].Percentage.Equal(pct))
	assert.Equal(t, int64(0), got.Deductions[2].Amount)
}
