package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/cache"
)

// Settings are the service level defaults taken from the application config.
type Settings struct {
	Location             *time.Location
	DefaultDayChangeTime string
	WindowDays           int
	CacheTTL             time.Duration
}

// SnapshotFunc runs fn so that every repository read inside it sees one consistent view.
type SnapshotFunc func(ctx context.Context, fn func(ctx context.Context) error) error

type PayrollServiceImpl struct {
	inSnapshot     SnapshotFunc
	payrollRepo    payroll.PayrollRepository
	profileRepo    profile.ProfileRepository
	attendanceRepo attendance.AttendanceRepository
	orderRepo      order.OrderRepository
	cache          cache.PayrollCache
	settings       Settings
	now            func() time.Time
}

func NewPayrollService(
	inSnapshot SnapshotFunc,
	payrollRepo payroll.PayrollRepository,
	profileRepo profile.ProfileRepository,
	attendanceRepo attendance.AttendanceRepository,
	orderRepo order.OrderRepository,
	payrollCache cache.PayrollCache,
	settings Settings,
) payroll.PayrollService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.WindowDays <= 0 {
		settings.WindowDays = 90
	}
	if inSnapshot == nil {
		inSnapshot = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	if payrollCache == nil {
		payrollCache = cache.NoopPayrollCache{}
	}
	return &PayrollServiceImpl{
		inSnapshot:     inSnapshot,
		payrollRepo:    payrollRepo,
		profileRepo:    profileRepo,
		attendanceRepo: attendanceRepo,
		orderRepo:      orderRepo,
		cache:          payrollCache,
		settings:       settings,
		now:            time.Now,
	}
}

// Helper to get store_id from JWT context
func getStoreIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	storeID, ok := claims["store_id"].(string)
	if !ok || storeID == "" {
		return "", payroll.ErrStoreScopeRequired
	}

	return storeID, nil
}

// window is the trailing range of business dates a computation covers.
type window struct {
	dayChangeHour int
	today         time.Time
	from          time.Time
}

// start returns the instant business date d begins.
func (w window) start(d time.Time) time.Time {
	return d.Add(time.Duration(w.dayChangeHour) * time.Hour)
}

// ========== PAYROLL ==========

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.PayrollResponse, error) {
	if filter.Days == 0 {
		filter.Days = s.settings.WindowDays
	}
	if err := filter.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	storeID, err := getStoreIDFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	cacheKey := payrollCacheKey(storeID, filter)
	if s.settings.CacheTTL > 0 {
		cached, ok, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			slog.WarnContext(ctx, "Payroll cache read failed", "store_id", storeID, "error", err)
		} else if ok {
			return *cached, nil
		}
	}

	result, w, err := s.compute(ctx, storeID, filter)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	resp := payroll.PayrollResponse{
		BusinessDate: DateKey(w.today),
		From:         DateKey(w.from),
		To:           DateKey(w.today),
		TodayTotal:   result.TodayTotal,
		Records:      mapToRecordResponses(result.Records),
	}

	if s.settings.CacheTTL > 0 {
		if err := s.cache.Set(ctx, cacheKey, &resp, s.settings.CacheTTL); err != nil {
			slog.WarnContext(ctx, "Payroll cache write failed", "store_id", storeID, "error", err)
		}
	}

	return resp, nil
}

func (s *PayrollServiceImpl) GetTodaySummary(ctx context.Context) (payroll.TodaySummaryResponse, error) {
	storeID, err := getStoreIDFromContext(ctx)
	if err != nil {
		return payroll.TodaySummaryResponse{}, err
	}

	result, w, err := s.compute(ctx, storeID, payroll.PayrollFilter{Days: 1})
	if err != nil {
		return payroll.TodaySummaryResponse{}, err
	}

	todayKey := DateKey(w.today)
	count := 0
	for _, r := range result.Records {
		if r.DateKey == todayKey {
			count++
		}
	}

	return payroll.TodaySummaryResponse{
		BusinessDate: todayKey,
		TodayTotal:   result.TodayTotal,
		RecordCount:  count,
	}, nil
}

// compute fetches the snapshot of the window and runs the calculator on it.
// Every fetch happens before the calculator starts.
func (s *PayrollServiceImpl) compute(ctx context.Context, storeID string, filter payroll.PayrollFilter) (payroll.Result, window, error) {
	start := time.Now()

	var (
		calc *Calculator
		w    window
		snap payroll.Snapshot
	)
	err := s.inSnapshot(ctx, func(ctx context.Context) error {
		dayChangeTime := s.settings.DefaultDayChangeTime
		storeSettings, err := s.payrollRepo.GetStoreSettings(ctx, storeID)
		if err != nil && !errors.Is(err, payroll.ErrStoreSettingsNotFound) {
			return fmt.Errorf("failed to get store settings: %w", err)
		}
		if err == nil && storeSettings.DayChangeTime != "" {
			dayChangeTime = storeSettings.DayChangeTime
		}

		calc = NewCalculator(s.settings.Location, ParseDayChangeHour(dayChangeTime))
		now := s.now()
		calc.Now = func() time.Time { return now }

		today := BusinessDate(now, calc.DayChangeHour, calc.Location)
		w = window{
			dayChangeHour: calc.DayChangeHour,
			today:         today,
			from:          today.AddDate(0, 0, -(filter.Days - 1)),
		}

		snap, err = s.loadSnapshot(ctx, storeID, filter, w)
		return err
	})
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			slog.ErrorContext(ctx, "Failed to load payroll snapshot", "store_id", storeID, "error", err)
		}
		return payroll.Result{}, window{}, err
	}

	result := calc.Calculate(snap)

	// Cards clocked in before the day change on the first day belong to the day before the window.
	records := result.Records[:0]
	for _, r := range result.Records {
		if !r.Date.Before(w.from) {
			records = append(records, r)
		}
	}
	result.Records = records

	slog.DebugContext(ctx, "Payroll computed",
		"store_id", storeID,
		"from", DateKey(w.from),
		"to", DateKey(w.today),
		"time_cards", len(snap.TimeCards),
		"orders", len(snap.Orders),
		"records", len(result.Records),
		"duration", time.Since(start),
	)

	return result, w, nil
}

func (s *PayrollServiceImpl) loadSnapshot(ctx context.Context, storeID string, filter payroll.PayrollFilter, w window) (payroll.Snapshot, error) {
	profiles, err := s.profileRepo.ListCommissionEligible(ctx, storeID)
	if err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to get profiles: %w", err)
	}
	if filter.ProfileID != nil {
		filtered := profiles[:0]
		for _, p := range profiles {
			if p.ID == *filter.ProfileID {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
		if len(profiles) == 0 {
			return payroll.Snapshot{}, profile.ErrProfileNotFound
		}
	}
	if len(profiles) == 0 {
		return payroll.Snapshot{}, nil
	}

	profileIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		profileIDs = append(profileIDs, p.ID)
	}

	stored, err := s.payrollRepo.ListSalarySystems(ctx, storeID)
	if err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to get salary systems: %w", err)
	}
	systems := make([]payroll.SalarySystem, 0, len(stored))
	for _, st := range stored {
		systems = append(systems, NormalizeSalarySystem(st))
	}

	// Work dates are calendar dates, so widen by a day on both sides and let the calculator re-bucket.
	timeCards, err := s.attendanceRepo.ListByProfilesInRange(ctx, storeID, profileIDs, w.from.AddDate(0, 0, -1), w.today.AddDate(0, 0, 1))
	if err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to get time cards: %w", err)
	}

	sessions, err := s.orderRepo.ListSessionsInRange(ctx, storeID, w.start(w.from), w.start(w.today.AddDate(0, 0, 1)))
	if err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to get table sessions: %w", err)
	}

	snap := payroll.Snapshot{
		Profiles:      profiles,
		TimeCards:     timeCards,
		Sessions:      sessions,
		SalarySystems: systems,
	}
	if len(sessions) == 0 {
		return snap, nil
	}

	sessionIDs := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}
	orders, err := s.orderRepo.ListOrdersBySessions(ctx, sessionIDs, profileIDs)
	if err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to get orders: %w", err)
	}
	snap.Orders = orders

	menuIDSet := make(map[string]bool)
	var menuIDs []string
	for _, o := range orders {
		if o.MenuID != nil && !menuIDSet[*o.MenuID] {
			menuIDSet[*o.MenuID] = true
			menuIDs = append(menuIDs, *o.MenuID)
		}
	}
	if len(menuIDs) > 0 {
		menus, err := s.orderRepo.ListMenusByIDs(ctx, storeID, menuIDs)
		if err != nil {
			return payroll.Snapshot{}, fmt.Errorf("failed to get menus: %w", err)
		}
		snap.Menus = menus
	}

	return snap, nil
}

// ========== HELPERS ==========

func payrollCacheKey(storeID string, filter payroll.PayrollFilter) string {
	profileID := "all"
	if filter.ProfileID != nil {
		profileID = *filter.ProfileID
	}
	return fmt.Sprintf("payroll:%s:%d:%s", storeID, filter.Days, profileID)
}

func mapToRecordResponse(r payroll.Record) payroll.PayrollRecordResponse {
	commissions := make([]payroll.CommissionLineResponse, 0, len(r.Commissions))
	for _, c := range r.Commissions {
		commissions = append(commissions, payroll.CommissionLineResponse{
			OrderID:   c.OrderID,
			SessionID: c.SessionID,
			TableName: c.TableName,
			ItemName:  c.ItemName,
			Category:  string(c.Category),
			UnitPrice: c.UnitPrice,
			Quantity:  c.Quantity,
			Amount:    c.Amount,
		})
	}

	deductions := make([]payroll.DeductionLineResponse, 0, len(r.Deductions))
	for _, d := range r.Deductions {
		line := payroll.DeductionLineResponse{
			Name:   d.Name,
			Type:   string(d.Type),
			Amount: d.Amount,
		}
		if d.Type == payroll.DeductionTypePercentage {
			pct := d.Percentage
			line.Percentage = &pct
		}
		deductions = append(deductions, line)
	}

	return payroll.PayrollRecordResponse{
		Date:        r.DateKey,
		Label:       r.Label,
		ProfileID:   r.ProfileID,
		ProfileName: r.ProfileName,
		HourlyWage:  r.HourlyWage,
		HourlyDetail: payroll.HourlyDetailResponse{
			WorkedMinutes:  r.Hourly.WorkedMinutes,
			BilledMinutes:  r.Hourly.BilledMinutes,
			HourlyRate:     r.Hourly.HourlyRate,
			RoundingUnit:   r.Hourly.RoundingUnit,
			RoundingMethod: string(r.Hourly.RoundingMethod),
			OpenShift:      r.Hourly.OpenShift,
		},
		CommissionTotal:  r.CommissionTotal,
		CommissionDetail: commissions,
		DeductionTotal:   r.DeductionTotal,
		DeductionDetail:  deductions,
		GrossTotal:       r.GrossTotal,
		NetTotal:         r.NetTotal,
		SalarySystemID:   r.SalarySystemID,
		SalarySystemName: r.SalarySystemName,
	}
}

func mapToRecordResponses(records []payroll.Record) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
