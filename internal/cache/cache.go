// Package cache хранит сериализованные результаты расчетов.
package cache

import (
	"context"
	"time"
)

// Repository хранилище строковых значений по ключу
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
