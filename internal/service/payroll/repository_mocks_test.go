package payroll

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
)

// MockPayrollRepository is a mock implementation of PayrollRepository
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) GetStoreSettings(ctx context.Context, storeID string) (payroll.StoreSettings, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(payroll.StoreSettings), args.Error(1)
}

func (m *MockPayrollRepository) ListSalarySystems(ctx context.Context, storeID string) ([]payroll.SalarySystemSettings, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payroll.SalarySystemSettings), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ListCommissionEligible(ctx context.Context, storeID string) ([]profile.Profile, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]profile.Profile), args.Error(1)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) ListByProfilesInRange(ctx context.Context, storeID string, profileIDs []string, from, to time.Time) ([]attendance.TimeCard, error) {
	args := m.Called(ctx, storeID, profileIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.TimeCard), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListSessionsInRange(ctx context.Context, storeID string, from, to time.Time) ([]order.TableSession, error) {
	args := m.Called(ctx, storeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.TableSession), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersBySessions(ctx context.Context, sessionIDs, castIDs []string) ([]order.OrderLine, error) {
	args := m.Called(ctx, sessionIDs, castIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderRepository) ListMenusByIDs(ctx context.Context, storeID string, ids []string) ([]order.Menu, error) {
	args := m.Called(ctx, storeID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Menu), args.Error(1)
}

// MockPayrollCache is a mock implementation of PayrollCache
type MockPayrollCache struct {
	mock.Mock
}

func (m *MockPayrollCache) Get(ctx context.Context, key string) (*payroll.PayrollResponse, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*payroll.PayrollResponse), args.Bool(1), args.Error(2)
}

func (m *MockPayrollCache) Set(ctx context.Context, key string, value *payroll.PayrollResponse, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
