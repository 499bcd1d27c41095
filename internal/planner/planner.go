// Package planner строит инвестиционный план по профилю пользователя.
package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/internal/catalog"
	"github.com/cloud-ru/finlit-projection-go/internal/config"
	"github.com/cloud-ru/finlit-projection-go/internal/logging"
)

// Profile параметры пользователя, уже проверенные вызывающей стороной
type Profile struct {
	RiskTolerance  string  `json:"risk_tolerance"`
	Age            int     `json:"age,omitempty"`
	HorizonYears   int     `json:"horizon_years,omitempty"`
	MonthlyCapital float64 `json:"monthly_capital"`
}

// Sleeve часть плана для одного класса активов
type Sleeve struct {
	AssetClass   catalog.Category               `json:"asset_class"`
	Percent      int                            `json:"percent"`
	Monthly      float64                        `json:"monthly"`
	ExpectedRate float64                        `json:"expected_rate_percent"`
	Projection   *calculations.ProjectionResult `json:"projection,omitempty"`
}

// Plan итоговый план
type Plan struct {
	Risk         allocation.RiskLevel  `json:"risk"`
	Allocation   allocation.Allocation `json:"allocation"`
	HorizonYears int                   `json:"horizon_years"`
	Sleeves      []Sleeve              `json:"sleeves"`
	Invested     float64               `json:"invested"`
	TotalValue   float64               `json:"total_value"`
	Funds        []catalog.FundRecord  `json:"funds"`
}

// Projector выполняет расчет проекции
type Projector interface {
	Project(ctx context.Context, in calculations.CalculatorInput) (*calculations.ProjectionResult, error)
}

// Planner собирает план из распределения, проекций и справочника фондов
type Planner struct {
	projector     Projector
	funds         catalog.Store
	returns       config.ExpectedReturns
	retirementAge int
	maxYears      int
	logger        *zap.Logger
}

// New создает планировщик
func New(projector Projector, funds catalog.Store, cfg *config.Config, logger *zap.Logger) *Planner {
	return &Planner{
		projector:     projector,
		funds:         funds,
		returns:       cfg.ExpectedReturns,
		retirementAge: cfg.RetirementAge,
		maxYears:      cfg.MaxMonths / 12,
		logger:        logging.OrNop(logger),
	}
}

// horizon возвращает горизонт в годах; без явного значения считается до пенсионного
// возраста и ограничивается max_months
func (p *Planner) horizon(profile Profile) int {
	if profile.HorizonYears > 0 {
		return profile.HorizonYears
	}
	years := p.retirementAge - profile.Age
	if p.maxYears > 0 && years > p.maxYears {
		years = p.maxYears
	}
	if years < 1 {
		return 1
	}
	return years
}

// Build строит план. Проекции по классам активов и выборка фондов выполняются параллельно.
func (p *Planner) Build(ctx context.Context, profile Profile) (*Plan, error) {
	if profile.MonthlyCapital <= 0 {
		return nil, &calculations.InvalidParameterError{Field: "monthly_capital", Value: profile.MonthlyCapital, Reason: "значение должно быть > 0"}
	}
	if profile.HorizonYears < 0 {
		return nil, &calculations.InvalidParameterError{Field: "horizon_years", Value: profile.HorizonYears, Reason: "значение должно быть ≥ 0"}
	}
	if p.maxYears > 0 && profile.HorizonYears > p.maxYears {
		return nil, &calculations.InvalidParameterError{Field: "horizon_years", Value: profile.HorizonYears, Reason: "значение слишком велико"}
	}
	if profile.Age < 0 {
		return nil, &calculations.InvalidParameterError{Field: "age", Value: profile.Age, Reason: "значение должно быть ≥ 0"}
	}

	risk := allocation.ParseRiskLevel(profile.RiskTolerance)
	alloc := allocation.For(risk)
	years := p.horizon(profile)
	equity, debt, gold := alloc.Split(profile.MonthlyCapital)

	sleeves := []Sleeve{
		{AssetClass: catalog.CategoryEquity, Percent: alloc.Equity, Monthly: equity, ExpectedRate: p.returns.Equity},
		{AssetClass: catalog.CategoryDebt, Percent: alloc.Debt, Monthly: debt, ExpectedRate: p.returns.Debt},
		{AssetClass: catalog.CategoryGold, Percent: alloc.Gold, Monthly: gold, ExpectedRate: p.returns.Gold},
	}

	g, gctx := errgroup.WithContext(ctx)

	for i := range sleeves {
		sleeve := &sleeves[i]
		if sleeve.Monthly == 0 {
			continue
		}
		g.Go(func() error {
			res, err := p.projector.Project(gctx, calculations.CalculatorInput{
				Mode:                calculations.ModeSIP,
				MonthlyContribution: sleeve.Monthly,
				AnnualRatePercent:   sleeve.ExpectedRate,
				TenureYears:         years,
			})
			if err != nil {
				return fmt.Errorf("%s projection: %w", sleeve.AssetClass, err)
			}
			sleeve.Projection = res
			return nil
		})
	}

	var funds []catalog.FundRecord
	if p.funds != nil {
		g.Go(func() error {
			var err error
			funds, err = p.funds.ListByRisk(gctx, risk)
			if err != nil {
				return fmt.Errorf("fund lookup: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{
		Risk:         risk,
		Allocation:   alloc,
		HorizonYears: years,
		Sleeves:      sleeves,
		Funds:        funds,
	}
	for _, s := range sleeves {
		if s.Projection == nil {
			continue
		}
		plan.Invested += s.Projection.InvestedAmount
		plan.TotalValue += s.Projection.TotalValue
	}

	p.logger.Debug("investment plan built",
		zap.String("risk", string(risk)),
		zap.Int("horizon_years", years),
		zap.Int("funds", len(funds)),
	)
	return plan, nil
}
