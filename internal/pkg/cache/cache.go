package cache

import (
	"context"
	"time"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

// PayrollCache memoizes computed payroll responses for a short TTL.
type PayrollCache interface {
	Get(ctx context.Context, key string) (*payroll.PayrollResponse, bool, error)
	Set(ctx context.Context, key string, value *payroll.PayrollResponse, ttl time.Duration) error
}

type NoopPayrollCache struct{}

func (NoopPayrollCache) Get(_ context.Context, _ string) (*payroll.PayrollResponse, bool, error) {
	return nil, false, nil
}

func (NoopPayrollCache) Set(_ context.Context, _ string, _ *payroll.PayrollResponse, _ time.Duration) error {
	return nil
}
