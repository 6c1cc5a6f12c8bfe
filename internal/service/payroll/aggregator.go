package payroll

import (
	"sort"
	"time"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
)

// Calculator folds time cards and order lines into per-day payroll records.
// It is a pure transform over the snapshot and is safe for concurrent use.
type Calculator struct {
	Location      *time.Location
	DayChangeHour int
	Now           func() time.Time
}

func NewCalculator(loc *time.Location, dayChangeHour int) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{
		Location:      loc,
		DayChangeHour: dayChangeHour,
		Now:           time.Now,
	}
}

type recordKey struct {
	date      string
	profileID string
}

// accumulator holds one record while pass 1 is still folding rows into it.
type accumulator struct {
	record *payroll.Record
	system *payroll.SalarySystem
}

type snapshotIndex struct {
	profiles map[string]profile.Profile
	systems  map[string]*payroll.SalarySystem
	sessions map[string]order.TableSession
	menus    map[string]*order.Menu
}

func indexSnapshot(snap payroll.Snapshot) snapshotIndex {
	idx := snapshotIndex{
		profiles: make(map[string]profile.Profile, len(snap.Profiles)),
		systems:  make(map[string]*payroll.SalarySystem, len(snap.SalarySystems)),
		sessions: make(map[string]order.TableSession, len(snap.Sessions)),
		menus:    make(map[string]*order.Menu, len(snap.Menus)),
	}
	for _, p := range snap.Profiles {
		idx.profiles[p.ID] = p
	}
	for i := range snap.SalarySystems {
		idx.systems[snap.SalarySystems[i].ID] = &snap.SalarySystems[i]
	}
	for _, s := range snap.Sessions {
		idx.sessions[s.ID] = s
	}
	for i := range snap.Menus {
		idx.menus[snap.Menus[i].ID] = &snap.Menus[i]
	}
	return idx
}

func (idx snapshotIndex) systemOf(p profile.Profile) *payroll.SalarySystem {
	if p.SalarySystemID == nil {
		return nil
	}
	return idx.systems[*p.SalarySystemID]
}

// Calculate runs both passes over snap. Deductions are resolved only after every
// time card and order line has been folded, so percentage deductions always see
// the final gross of the record.
func (c *Calculator) Calculate(snap payroll.Snapshot) payroll.Result {
	now := c.now()
	idx := indexSnapshot(snap)
	acc := make(map[recordKey]*accumulator)

	c.collectTimeCards(snap, idx, acc, now)
	c.collectOrders(snap, idx, acc)

	records := make([]payroll.Record, 0, len(acc))
	for _, a := range acc {
		finalize(a)
		records = append(records, *a.record)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		if records[i].ProfileName != records[j].ProfileName {
			return records[i].ProfileName < records[j].ProfileName
		}
		return records[i].ProfileID < records[j].ProfileID
	})

	today := BusinessDate(now, c.DayChangeHour, c.Location)
	return payroll.Result{
		Records:       records,
		TodayTotal:    TodayTotal(records, today),
		BusinessToday: today,
	}
}

// TodayTotal sums the net totals of today's records. Negative nets count as zero
// here only; the records themselves keep their negative value.
func TodayTotal(records []payroll.Record, today time.Time) int64 {
	key := DateKey(today)
	var total int64
	for _, r := range records {
		if r.DateKey == key && r.NetTotal > 0 {
			total += r.NetTotal
		}
	}
	return total
}

func (c *Calculator) collectTimeCards(snap payroll.Snapshot, idx snapshotIndex, acc map[recordKey]*accumulator, now time.Time) {
	for _, card := range snap.TimeCards {
		p, ok := idx.profiles[card.ProfileID]
		if !ok {
			continue
		}
		system := idx.systemOf(p)

		var date time.Time
		if card.ClockIn != nil {
			date = BusinessDate(*card.ClockIn, c.DayChangeHour, c.Location)
		} else {
			date = time.Date(card.WorkDate.Year(), card.WorkDate.Month(), card.WorkDate.Day(), 0, 0, 0, 0, c.Location)
		}

		a := c.entry(acc, date, p, system)
		hourly := CalculateHourly(card, hourlySettings(system), now)
		if !hourly.Counted {
			continue
		}
		a.record.HourlyWage += hourly.Wage
		a.record.Hourly.WorkedMinutes += hourly.WorkedMinutes
		a.record.Hourly.BilledMinutes += hourly.BilledMinutes
		a.record.Hourly.OpenShift = a.record.Hourly.OpenShift || hourly.Open
	}
}

func (c *Calculator) collectOrders(snap payroll.Snapshot, idx snapshotIndex, acc map[recordKey]*accumulator) {
	for _, line := range snap.Orders {
		if line.CastID == nil {
			continue
		}
		p, ok := idx.profiles[*line.CastID]
		if !ok {
			continue
		}
		session, ok := idx.sessions[line.SessionID]
		if !ok {
			continue
		}
		var menu *order.Menu
		if line.MenuID != nil {
			menu = idx.menus[*line.MenuID]
		}
		system := idx.systemOf(p)

		date := BusinessDate(session.StartTime, c.DayChangeHour, c.Location)
		a := c.entry(acc, date, p, system)

		category := ClassifyOrder(line, menu)
		amount := CalculateBack(system.BackFor(category), menu, line.UnitPrice, line.Quantity)
		if amount <= 0 {
			continue
		}

		tableName := ""
		if session.TableName != nil {
			tableName = *session.TableName
		}
		a.record.CommissionTotal += amount
		a.record.Commissions = append(a.record.Commissions, payroll.CommissionLine{
			OrderID:   line.ID,
			SessionID: line.SessionID,
			TableName: tableName,
			ItemName:  line.ItemName,
			Category:  category,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Amount:    amount,
		})
	}
}

// entry returns the accumulator of (date, profile), creating it on first use.
func (c *Calculator) entry(acc map[recordKey]*accumulator, date time.Time, p profile.Profile, system *payroll.SalarySystem) *accumulator {
	key := recordKey{date: DateKey(date), profileID: p.ID}
	if a, ok := acc[key]; ok {
		return a
	}

	hs := hourlySettings(system)
	rec := &payroll.Record{
		Date:        date,
		DateKey:     key.date,
		Label:       DateLabel(date),
		ProfileID:   p.ID,
		ProfileName: p.DisplayName,
		Hourly: payroll.HourlyDetail{
			HourlyRate:     hs.Amount,
			RoundingUnit:   hs.RoundingUnit,
			RoundingMethod: hs.RoundingMethod,
		},
		Commissions: []payroll.CommissionLine{},
		Deductions:  []payroll.DeductionLine{},
	}
	if system != nil {
		id, name := system.ID, system.Name
		rec.SalarySystemID = &id
		rec.SalarySystemName = &name
	}

	a := &accumulator{record: rec, system: system}
	acc[key] = a
	return a
}

// finalize resolves deductions against the completed gross of the record.
func finalize(a *accumulator) {
	rec := a.record
	rec.GrossTotal = rec.HourlyWage + rec.CommissionTotal

	if a.system != nil {
		for _, d := range a.system.Deductions {
			line := payroll.DeductionLine{Name: d.Name, Type: d.Type}
			switch d.Type {
			case payroll.DeductionTypeFixed:
				line.Amount = d.Amount
			case payroll.DeductionTypePercentage:
				line.Percentage = d.Percentage
				line.Amount = percentOf(rec.GrossTotal, d.Percentage)
			}
			rec.DeductionTotal += line.Amount
			rec.Deductions = append(rec.Deductions, line)
		}
	}

	rec.NetTotal = rec.GrossTotal - rec.DeductionTotal
}

func hourlySettings(system *payroll.SalarySystem) payroll.HourlySettings {
	if system == nil {
		return payroll.HourlySettings{
			RoundingUnit:   DefaultTimeRoundingUnit,
			RoundingMethod: payroll.RoundingNearest,
		}
	}
	return system.Hourly
}

func (c *Calculator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
