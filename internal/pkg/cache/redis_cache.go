package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

type RedisPayrollCache struct {
	client *redis.Client
}

func NewRedisPayrollCache(addr string, password string, db int) *RedisPayrollCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisPayrollCache{client: client}
}

func (c *RedisPayrollCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisPayrollCache) Close() error {
	return c.client.Close()
}

func (c *RedisPayrollCache) Get(ctx context.Context, key string) (*payroll.PayrollResponse, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp payroll.PayrollResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisPayrollCache) Set(ctx context.Context, key string, value *payroll.PayrollResponse, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
