package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
)

var tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, tokyo)
}

func newTestCalculator(now time.Time) *Calculator {
	calc := NewCalculator(tokyo, 5)
	calc.Now = func() time.Time { return now }
	return calc
}

func standardSystem() payroll.SalarySystem {
	return payroll.SalarySystem{
		ID:   "sys-standard",
		Name: "Standard",
		Hourly: payroll.HourlySettings{
			Amount:         2000,
			RoundingUnit:   60,
			RoundingMethod: payroll.RoundingNearest,
		},
		Backs: map[payroll.FeeCategory]*payroll.BackRule{
			payroll.FeeCategoryStore: {
				Type:       payroll.BackCalculationTotalPercent,
				Percentage: decimal.NewFromInt(10),
			},
		},
		Deductions: []payroll.DeductionRule{
			{Name: "厚生費", Type: payroll.DeductionTypeFixed, Amount: 500},
			{Name: "源泉", Type: payroll.DeductionTypePercentage, Percentage: decimal.NewFromInt(5)},
		},
	}
}

func cast(id, name string, systemID *string) profile.Profile {
	return profile.Profile{ID: id, DisplayName: name, Role: profile.RoleCast, SalarySystemID: systemID}
}

func card(id, profileID string, in time.Time, out *time.Time) attendance.TimeCard {
	return attendance.TimeCard{ID: id, ProfileID: profileID, WorkDate: in, ClockIn: &in, ClockOut: out}
}

func findRecord(t *testing.T, records []payroll.Record, dateKey, profileID string) payroll.Record {
	t.Helper()
	for _, r := range records {
		if r.DateKey == dateKey && r.ProfileID == profileID {
			return r
		}
	}
	require.Failf(t, "record not found", "%s/%s", dateKey, profileID)
	return payroll.Record{}
}

func TestCalculate_HourlyCommissionAndDeductions(t *testing.T) {
	system := standardSystem()
	out := at(3, 10, 23, 0)
	table := "A1"

	snap := payroll.Snapshot{
		Profiles:      []profile.Profile{cast("p1", "あかり", &system.ID)},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards:     []attendance.TimeCard{card("c1", "p1", at(3, 10, 18, 0), &out)},
		Sessions:      []order.TableSession{{ID: "s1", StartTime: at(3, 10, 20, 0), TableName: &table}},
		Menus:         []order.Menu{{ID: "m1", Name: "セット", Price: 5000}},
		Orders: []order.OrderLine{{
			ID: "o1", SessionID: "s1", CastID: ptr("p1"), MenuID: ptr("m1"),
			ItemName: "セット", UnitPrice: 5000, Quantity: 2, Amount: 10000,
		}},
	}

	result := newTestCalculator(at(3, 11, 2, 0)).Calculate(snap)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "2024-03-10", rec.DateKey)
	assert.Equal(t, "3/10(日)", rec.Label)
	assert.Equal(t, "あかり", rec.ProfileName)

	assert.Equal(t, int64(10000), rec.HourlyWage)
	assert.Equal(t, int64(300), rec.Hourly.WorkedMinutes)
	assert.Equal(t, int64(2000), rec.Hourly.HourlyRate)

	assert.Equal(t, int64(1000), rec.CommissionTotal)
	require.Len(t, rec.Commissions, 1)
	assert.Equal(t, payroll.FeeCategoryStore, rec.Commissions[0].Category)
	assert.Equal(t, "A1", rec.Commissions[0].TableName)

	assert.Equal(t, int64(11000), rec.GrossTotal)
	require.Len(t, rec.Deductions, 2)
	assert.Equal(t, int64(500), rec.Deductions[0].Amount)
	assert.Equal(t, int64(550), rec.Deductions[1].Amount)
	assert.Equal(t, int64(1050), rec.DeductionTotal)
	assert.Equal(t, int64(9950), rec.NetTotal)

	require.NotNil(t, rec.SalarySystemName)
	assert.Equal(t, "Standard", *rec.SalarySystemName)

	assert.Equal(t, "2024-03-10", DateKey(result.BusinessToday))
	assert.Equal(t, int64(9950), result.TodayTotal)
}

func TestCalculate_EarlyMorningPunchBelongsToPreviousDay(t *testing.T) {
	system := standardSystem()
	system.Deductions = nil
	out := at(3, 11, 6, 0)

	snap := payroll.Snapshot{
		Profiles:      []profile.Profile{cast("p1", "あかり", &system.ID)},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards:     []attendance.TimeCard{card("c1", "p1", at(3, 11, 4, 0), &out)},
	}

	result := newTestCalculator(at(3, 12, 12, 0)).Calculate(snap)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "2024-03-10", result.Records[0].DateKey)
	assert.Equal(t, int64(4000), result.Records[0].HourlyWage)
}

func TestCalculate_SessionBeforeDayChangeBelongsToPreviousDay(t *testing.T) {
	system := standardSystem()
	system.Deductions = nil

	snap := payroll.Snapshot{
		Profiles:      []profile.Profile{cast("p1", "あかり", &system.ID)},
		SalarySystems: []payroll.SalarySystem{system},
		Sessions:      []order.TableSession{{ID: "s1", StartTime: at(3, 11, 1, 30)}},
		Orders: []order.OrderLine{{
			ID: "o1", SessionID: "s1", CastID: ptr("p1"), ItemName: "ボトル", UnitPrice: 20000, Quantity: 1,
		}},
	}

	result := newTestCalculator(at(3, 12, 12, 0)).Calculate(snap)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "2024-03-10", result.Records[0].DateKey)
	assert.Equal(t, int64(2000), result.Records[0].CommissionTotal)
}

func TestCalculate_TotalsAreAdditive(t *testing.T) {
	system := standardSystem()
	system.Backs[payroll.FeeCategoryNomination] = &payroll.BackRule{Type: payroll.BackCalculationFixed, FixedAmount: 1500}
	out1 := at(3, 10, 22, 10)
	out2 := at(3, 11, 1, 40)

	snap := payroll.Snapshot{
		Profiles: []profile.Profile{
			cast("p1", "あかり", &system.ID),
			cast("p2", "みさき", &system.ID),
		},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards: []attendance.TimeCard{
			card("c1", "p1", at(3, 10, 19, 0), &out1),
			card("c2", "p1", at(3, 10, 23, 0), &out2),
			card("c3", "p2", at(3, 9, 20, 0), &out1),
		},
		Sessions: []order.TableSession{
			{ID: "s1", StartTime: at(3, 10, 20, 0)},
			{ID: "s2", StartTime: at(3, 9, 21, 0)},
		},
		Orders: []order.OrderLine{
			{ID: "o1", SessionID: "s1", CastID: ptr("p1"), ItemName: "本指名", UnitPrice: 3000, Quantity: 1},
			{ID: "o2", SessionID: "s1", CastID: ptr("p1"), ItemName: "シャンパン", UnitPrice: 30000, Quantity: 1},
			{ID: "o3", SessionID: "s2", CastID: ptr("p2"), ItemName: "ドリンク", UnitPrice: 1000, Quantity: 3},
		},
	}

	result := newTestCalculator(at(3, 11, 3, 0)).Calculate(snap)
	require.NotEmpty(t, result.Records)

	for _, rec := range result.Records {
		var commissions, deductions int64
		for _, c := range rec.Commissions {
			commissions += c.Amount
		}
		for _, d := range rec.Deductions {
			deductions += d.Amount
		}
		assert.Equal(t, rec.CommissionTotal, commissions)
		assert.Equal(t, rec.DeductionTotal, deductions)
		assert.Equal(t, rec.HourlyWage+rec.CommissionTotal, rec.GrossTotal)
		assert.Equal(t, rec.GrossTotal-rec.DeductionTotal, rec.NetTotal)
	}

	p1 := findRecord(t, result.Records, "2024-03-10", "p1")
	// 190 + 160 minutes are billed as 180 + 180
	assert.Equal(t, int64(12000), p1.HourlyWage)
	assert.Equal(t, int64(1500+3000), p1.CommissionTotal)
}

func TestCalculate_NegativeNetIsKeptButNotCountedToday(t *testing.T) {
	system := payroll.SalarySystem{
		ID:     "sys-deduct",
		Name:   "Deduct",
		Hourly: payroll.HourlySettings{Amount: 1000, RoundingUnit: 60, RoundingMethod: payroll.RoundingDown},
		Deductions: []payroll.DeductionRule{
			{Name: "寮費", Type: payroll.DeductionTypeFixed, Amount: 5000},
		},
	}
	out := at(3, 10, 21, 0)

	snap := payroll.Snapshot{
		Profiles: []profile.Profile{
			cast("p1", "あかり", &system.ID),
			cast("p2", "みさき", nil),
		},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards: []attendance.TimeCard{
			card("c1", "p1", at(3, 10, 20, 0), &out),
		},
		Sessions: []order.TableSession{{ID: "s1", StartTime: at(3, 10, 20, 0)}},
		Menus:    []order.Menu{{ID: "m1", Name: "指名料", BackAmount: 1500}},
		Orders: []order.OrderLine{
			{ID: "o1", SessionID: "s1", CastID: ptr("p2"), MenuID: ptr("m1"), ItemName: "指名料", UnitPrice: 3000, Quantity: 2},
		},
	}

	result := newTestCalculator(at(3, 10, 23, 0)).Calculate(snap)

	p1 := findRecord(t, result.Records, "2024-03-10", "p1")
	assert.Equal(t, int64(1000), p1.GrossTotal)
	assert.Equal(t, int64(-4000), p1.NetTotal)

	p2 := findRecord(t, result.Records, "2024-03-10", "p2")
	assert.Equal(t, int64(3000), p2.NetTotal, "menu back is paid without a salary system")
	assert.Nil(t, p2.SalarySystemID)

	assert.Equal(t, int64(3000), result.TodayTotal)
}

func TestCalculate_DropsOrphanRows(t *testing.T) {
	system := standardSystem()
	out := at(3, 10, 23, 0)

	snap := payroll.Snapshot{
		Profiles:      []profile.Profile{cast("p1", "あかり", &system.ID)},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards: []attendance.TimeCard{
			card("c1", "unknown", at(3, 10, 18, 0), &out),
		},
		Sessions: []order.TableSession{{ID: "s1", StartTime: at(3, 10, 20, 0)}},
		Orders: []order.OrderLine{
			{ID: "o1", SessionID: "s1", ItemName: "セット", UnitPrice: 5000, Quantity: 1},
			{ID: "o2", SessionID: "missing", CastID: ptr("p1"), ItemName: "セット", UnitPrice: 5000, Quantity: 1},
			{ID: "o3", SessionID: "s1", CastID: ptr("unknown"), ItemName: "セット", UnitPrice: 5000, Quantity: 1},
		},
	}

	result := newTestCalculator(at(3, 11, 2, 0)).Calculate(snap)

	assert.Empty(t, result.Records)
	assert.Zero(t, result.TodayTotal)
}

func TestCalculate_MissingSalarySystemFallsBackToDefaults(t *testing.T) {
	out := at(3, 10, 23, 0)

	snap := payroll.Snapshot{
		Profiles:  []profile.Profile{cast("p1", "あかり", ptr("deleted-system"))},
		TimeCards: []attendance.TimeCard{card("c1", "p1", at(3, 10, 18, 0), &out)},
	}

	result := newTestCalculator(at(3, 11, 2, 0)).Calculate(snap)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Zero(t, rec.HourlyWage)
	assert.Equal(t, int64(300), rec.Hourly.WorkedMinutes)
	assert.Equal(t, int64(DefaultTimeRoundingUnit), rec.Hourly.RoundingUnit)
	assert.Nil(t, rec.SalarySystemID)
	assert.Empty(t, rec.Deductions)
}

func TestCalculate_OpenShiftAndMissingClockIn(t *testing.T) {
	system := standardSystem()
	system.Deductions = nil

	snap := payroll.Snapshot{
		Profiles:      []profile.Profile{cast("p1", "あかり", &system.ID), cast("p2", "みさき", &system.ID)},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards: []attendance.TimeCard{
			card("c1", "p1", at(3, 10, 20, 0), nil),
			{ID: "c2", ProfileID: "p2", WorkDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		},
	}

	result := newTestCalculator(at(3, 10, 22, 0)).Calculate(snap)

	open := findRecord(t, result.Records, "2024-03-10", "p1")
	assert.True(t, open.Hourly.OpenShift)
	assert.Equal(t, int64(4000), open.HourlyWage)

	noClockIn := findRecord(t, result.Records, "2024-03-10", "p2")
	assert.Zero(t, noClockIn.HourlyWage)
	assert.Zero(t, noClockIn.NetTotal)
}

func TestCalculate_SortOrder(t *testing.T) {
	out9 := at(3, 9, 23, 0)
	out10 := at(3, 10, 23, 0)

	snap := payroll.Snapshot{
		Profiles: []profile.Profile{
			cast("p2", "Bea", nil),
			cast("p1", "Ann", nil),
			cast("p3", "Ann", nil),
		},
		TimeCards: []attendance.TimeCard{
			card("c1", "p2", at(3, 9, 20, 0), &out9),
			card("c2", "p2", at(3, 10, 20, 0), &out10),
			card("c3", "p3", at(3, 10, 20, 0), &out10),
			card("c4", "p1", at(3, 10, 20, 0), &out10),
		},
	}

	result := newTestCalculator(at(3, 11, 2, 0)).Calculate(snap)

	var got []string
	for _, r := range result.Records {
		got = append(got, r.DateKey+"/"+r.ProfileID)
	}
	assert.Equal(t, []string{
		"2024-03-10/p1",
		"2024-03-10/p3",
		"2024-03-10/p2",
		"2024-03-09/p2",
	}, got)
}

func TestCalculate_IsDeterministic(t *testing.T) {
	system := standardSystem()
	out := at(3, 10, 23, 0)
	snap := payroll.Snapshot{
		Profiles:      []profile.Profile{cast("p1", "あかり", &system.ID)},
		SalarySystems: []payroll.SalarySystem{system},
		TimeCards:     []attendance.TimeCard{card("c1", "p1", at(3, 10, 18, 0), &out)},
	}

	calc := newTestCalculator(at(3, 11, 2, 0))
	assert.Equal(t, calc.Calculate(snap), calc.Calculate(snap))
}

func TestTodayTotal(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, tokyo)
	records := []payroll.Record{
		{DateKey: "2024-03-10", NetTotal: 5000},
		{DateKey: "2024-03-10", NetTotal: -2000},
		{DateKey: "2024-03-10", NetTotal: 1500},
		{DateKey: "2024-03-09", NetTotal: 9000},
	}

	assert.Equal(t, int64(6500), TodayTotal(records, today))
	assert.Zero(t, TodayTotal(nil, today))
}
