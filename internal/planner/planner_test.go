package planner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/internal/catalog"
	"github.com/cloud-ru/finlit-projection-go/internal/config"
)

type directProjector struct{}

func (directProjector) Project(ctx context.Context, in calculations.CalculatorInput) (*calculations.ProjectionResult, error) {
	return calculations.Calculate(in)
}

type brokenStore struct{}

func (brokenStore) List(ctx context.Context) ([]catalog.FundRecord, error) {
	return nil, errors.New("db down")
}

func (brokenStore) ListByRisk(ctx context.Context, level allocation.RiskLevel) ([]catalog.FundRecord, error) {
	return nil, errors.New("db down")
}

func testConfig() *config.Config {
	return &config.Config{
		MaxMonths:       600,
		RetirementAge:   60,
		ExpectedReturns: config.ExpectedReturns{Equity: 12, Debt: 7, Gold: 8},
	}
}

func TestBuild(t *testing.T) {
	store, err := catalog.DefaultStore()
	if err != nil {
		t.Fatalf("DefaultStore() error = %v", err)
	}
	p := New(directProjector{}, store, testConfig(), nil)

	plan, err := p.Build(context.Background(), Profile{
		RiskTolerance:  "aggressive",
		HorizonYears:   10,
		MonthlyCapital: 20000,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if plan.Allocation != (allocation.Allocation{Equity: 75, Debt: 15, Gold: 10}) {
		t.Errorf("unexpected allocation %+v", plan.Allocation)
	}
	if plan.Sleeves[0].Monthly != 15000 {
		t.Errorf("expected equity sleeve 15000, got %f", plan.Sleeves[0].Monthly)
	}
	for _, s := range plan.Sleeves {
		if s.Projection == nil {
			t.Fatalf("%s sleeve has no projection", s.AssetClass)
		}
	}

	wantEquity, _ := calculations.SIPFutureValue(15000, 12, 120)
	if plan.Sleeves[0].Projection.TotalValue != wantEquity {
		t.Errorf("equity sleeve = %f, want %f", plan.Sleeves[0].Projection.TotalValue, wantEquity)
	}
	if math.Abs(plan.Invested-20000*120) > 1e-6 {
		t.Errorf("expected invested 2400000, got %f", plan.Invested)
	}
	for _, f := range plan.Funds {
		if f.Risk != allocation.Aggressive {
			t.Errorf("fund %s does not match risk", f.Name)
		}
	}
	if len(plan.Funds) == 0 {
		t.Error("expected matching funds")
	}
}

func TestBuildDerivesHorizonFromAge(t *testing.T) {
	p := New(directProjector{}, nil, testConfig(), nil)

	plan, err := p.Build(context.Background(), Profile{Age: 35, MonthlyCapital: 10000})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if plan.HorizonYears != 25 {
		t.Errorf("expected horizon 25, got %d", plan.HorizonYears)
	}
	if plan.Risk != allocation.Moderate {
		t.Errorf("missing tolerance should default to moderate, got %s", plan.Risk)
	}

	late, err := p.Build(context.Background(), Profile{Age: 70, MonthlyCapital: 10000})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if late.HorizonYears != 1 {
		t.Errorf("expected minimum horizon 1, got %d", late.HorizonYears)
	}
}

func TestBuildClampsDerivedHorizon(t *testing.T) {
	p := New(directProjector{}, nil, testConfig(), nil)

	plan, err := p.Build(context.Background(), Profile{Age: 0, MonthlyCapital: 10000})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if plan.HorizonYears != 50 {
		t.Errorf("expected horizon capped at 50 years, got %d", plan.HorizonYears)
	}
	for _, s := range plan.Sleeves {
		if s.Projection != nil && len(s.Projection.Series) != 51 {
			t.Errorf("%s sleeve has %d points, want 51", s.AssetClass, len(s.Projection.Series))
		}
	}

	_, err = p.Build(context.Background(), Profile{HorizonYears: 51, MonthlyCapital: 10000})
	var perr *calculations.InvalidParameterError
	if !errors.As(err, &perr) || perr.Field != "horizon_years" {
		t.Errorf("expected horizon_years error, got %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	p := New(directProjector{}, brokenStore{}, testConfig(), nil)

	_, err := p.Build(context.Background(), Profile{MonthlyCapital: 0, HorizonYears: 5})
	var perr *calculations.InvalidParameterError
	if !errors.As(err, &perr) || perr.Field != "monthly_capital" {
		t.Errorf("expected monthly_capital error, got %v", err)
	}

	if _, err := p.Build(context.Background(), Profile{MonthlyCapital: 1000, HorizonYears: 5}); err == nil {
		t.Error("expected catalog failure to propagate")
	}
}
