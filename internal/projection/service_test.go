package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloud-ru/finlit-projection-go/internal/cache"
	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
)

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (failingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}

var sipInput = calculations.CalculatorInput{
	Mode:                calculations.ModeSIP,
	MonthlyContribution: 25000,
	AnnualRatePercent:   12,
	TenureYears:         10,
}

func TestProjectCachesResult(t *testing.T) {
	mem := cache.NewMemoryCache()
	svc := NewService(mem, time.Minute, nil)

	first, err := svc.Project(context.Background(), sipInput)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if mem.Len() != 1 {
		t.Fatalf("expected one cached entry, got %d", mem.Len())
	}

	second, err := svc.Project(context.Background(), sipInput)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if first.TotalValue != second.TotalValue || len(first.Series) != len(second.Series) {
		t.Error("cached result differs from computed result")
	}
	if mem.Len() != 1 {
		t.Errorf("repeated input should reuse the entry, got %d", mem.Len())
	}
}

func TestProjectIgnoresCacheFailures(t *testing.T) {
	svc := NewService(failingCache{}, time.Minute, nil)

	res, err := svc.Project(context.Background(), sipInput)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if res.InvestedAmount != 3000000 {
		t.Errorf("expected invested 3000000, got %f", res.InvestedAmount)
	}
}

func TestProjectReturnsValidationError(t *testing.T) {
	mem := cache.NewMemoryCache()
	svc := NewService(mem, time.Minute, nil)

	_, err := svc.Project(context.Background(), calculations.CalculatorInput{Mode: calculations.ModeEMI, Principal: 1000, TenureYears: 1})
	var perr *calculations.InvalidParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if mem.Len() != 0 {
		t.Error("failed calculations must not be cached")
	}
}

func TestKeyDependsOnInput(t *testing.T) {
	a, _ := Key(sipInput)
	other := sipInput
	other.TenureYears = 11
	b, _ := Key(other)
	if a == b {
		t.Error("different inputs should produce different keys")
	}
	again, _ := Key(sipInput)
	if a != again {
		t.Error("key must be stable for the same input")
	}
}
