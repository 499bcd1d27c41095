// Package projection оборачивает расчеты кэшем по набору входных параметров.
package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/cloud-ru/finlit-projection-go/internal/cache"
	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/internal/logging"
	"github.com/cloud-ru/finlit-projection-go/internal/metrics"
)

const keyPrefix = "finlit:projection:"

// Service выполняет расчеты и запоминает результаты.
// Ошибки кэша только логируются: расчет от них не зависит.
type Service struct {
	cache  cache.Repository
	ttl    time.Duration
	logger *zap.Logger
}

// NewService создает сервис; repo может быть nil, тогда кэш не используется
func NewService(repo cache.Repository, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		cache:  repo,
		ttl:    ttl,
		logger: logging.OrNop(logger),
	}
}

// Key возвращает ключ кэша для набора параметров
func Key(in calculations.CalculatorInput) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode input: %w", err)
	}
	return keyPrefix + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

// Project возвращает результат расчета, при возможности из кэша
func (s *Service) Project(ctx context.Context, in calculations.CalculatorInput) (*calculations.ProjectionResult, error) {
	key, err := Key(in)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.lookup(ctx, key); ok {
			return cached, nil
		}
	}

	start := time.Now()
	result, err := calculations.Calculate(in)
	if err != nil {
		return nil, err
	}
	metrics.CalculationDuration.WithLabelValues(string(result.Mode)).Observe(time.Since(start).Seconds())

	if s.cache != nil {
		s.store(ctx, key, result)
	}
	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) (*calculations.ProjectionResult, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("projection cache lookup failed", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var result calculations.ProjectionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("projection cache entry is corrupt", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &result, true
}

func (s *Service) store(ctx context.Context, key string, result *calculations.ProjectionResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode projection", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("projection cache store failed", zap.String("key", key), zap.Error(err))
	}
}
