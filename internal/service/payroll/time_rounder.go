package payroll

import (
	"time"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

// DefaultTimeRoundingUnit is the hourly rounding unit in minutes.
const DefaultTimeRoundingUnit = 60

// HourlyResult is the hourly wage of a single time card.
type HourlyResult struct {
	WorkedMinutes int64
	BilledMinutes int64
	Wage          int64
	Counted       bool
	Open          bool
}

// RoundValue snaps v to a multiple of unit. Minutes and yen share this.
// A unit of zero or less disables rounding.
func RoundValue(v, unit int64, method payroll.RoundingMethod) int64 {
	if unit <= 0 {
		return v
	}

	q := floorDiv(v, unit)
	r := v - q*unit
	if r == 0 {
		return v
	}

	switch method {
	case payroll.RoundingDown:
		return q * unit
	case payroll.RoundingUp:
		return (q + 1) * unit
	default:
		if 2*r >= unit {
			return (q + 1) * unit
		}
		return q * unit
	}
}

// WorkedMinutes returns the whole minutes between clock-in and clock-out.
// An open shift runs until now. A clock-out earlier than the clock-in is a shift
// that crossed midnight on the same work date, so it is moved one day forward.
func WorkedMinutes(clockIn time.Time, clockOut *time.Time, now time.Time) int64 {
	end := now
	if clockOut != nil {
		end = *clockOut
	}
	if end.Before(clockIn) {
		end = end.Add(24 * time.Hour)
	}
	minutes := int64(end.Sub(clockIn) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// CalculateHourly bills one time card with the given hourly settings.
func CalculateHourly(card attendance.TimeCard, hs payroll.HourlySettings, now time.Time) HourlyResult {
	if card.ClockIn == nil {
		return HourlyResult{}
	}

	worked := WorkedMinutes(*card.ClockIn, card.ClockOut, now)
	billed := RoundValue(worked, hs.RoundingUnit, hs.RoundingMethod)

	return HourlyResult{
		WorkedMinutes: worked,
		BilledMinutes: billed,
		Wage:          billed * hs.Amount / 60,
		Counted:       true,
		Open:          card.ClockOut == nil,
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
