package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/internal/catalog"
	"github.com/cloud-ru/finlit-projection-go/internal/config"
	"github.com/cloud-ru/finlit-projection-go/internal/logging"
	"github.com/cloud-ru/finlit-projection-go/internal/metrics"
	"github.com/cloud-ru/finlit-projection-go/internal/planner"
	"github.com/cloud-ru/finlit-projection-go/internal/validators"
	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// ErrUnknownTool возвращается при вызове незарегистрированного инструмента
var ErrUnknownTool = errors.New("unknown tool")

// Deps зависимости обработчиков
type Deps struct {
	Config    *config.Config
	Projector planner.Projector
	Planner   *planner.Planner
	Funds     catalog.Store
	Tracer    trace.Tracer
	Logger    *zap.Logger
}

// Registry набор инструментов по имени
type Registry struct {
	deps     Deps
	handlers map[string]ToolHandler
}

// NewRegistry регистрирует все инструменты
func NewRegistry(d Deps) *Registry {
	d.Logger = logging.OrNop(d.Logger)
	r := &Registry{deps: d, handlers: make(map[string]ToolHandler)}

	r.handlers["sip_calculator"] = r.calculatorHandler("sip_calculator", calculations.ModeSIP)
	r.handlers["lumpsum_calculator"] = r.calculatorHandler("lumpsum_calculator", calculations.ModeLumpsum)
	r.handlers["emi_calculator"] = r.calculatorHandler("emi_calculator", calculations.ModeEMI)
	r.handlers["fd_calculator"] = r.calculatorHandler("fd_calculator", calculations.ModeFD)
	r.handlers["swp_calculator"] = r.calculatorHandler("swp_calculator", calculations.ModeSWP)
	r.handlers["mutual_fund_calculator"] = r.calculatorHandler("mutual_fund_calculator", calculations.ModeMF)
	r.handlers["emi_schedule"] = r.emiScheduleHandler()
	r.handlers["compare_sip_lumpsum"] = r.compareHandler()
	r.handlers["risk_allocation"] = r.allocationHandler()
	r.handlers["funds_by_risk"] = r.fundsHandler()
	if d.Planner != nil {
		r.handlers["investment_plan"] = r.planHandler()
	}
	return r
}

// Names возвращает имена инструментов в алфавитном порядке
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call вызывает инструмент по имени
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return h(ctx, params)
}

// fail фиксирует ошибку в спане и метриках
func (r *Registry) fail(span trace.Span, toolName string, err error) error {
	kind, status := "calculation", "error"
	var perr *calculations.InvalidParameterError
	if errors.As(err, &perr) {
		kind, status = "validation", "validation_error"
		span.SetAttributes(attribute.String("error.field", perr.Field))
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	span.SetAttributes(attribute.String("error", kind+"_error"))
	metrics.ToolCalls.WithLabelValues(toolName, status).Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, kind).Inc()

	r.deps.Logger.Debug("tool call failed", zap.String("tool", toolName), zap.String("kind", kind), zap.Error(err))
	return fmt.Errorf("%s: %w", toolName, err)
}

func (r *Registry) succeed(span trace.Span, toolName string, attrs ...attribute.KeyValue) {
	span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
}

// calculatorHandler обрабатывает запрос на расчет одного из калькуляторов
func (r *Registry) calculatorHandler(toolName string, mode calculations.Mode) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, span := r.deps.Tracer.Start(ctx, toolName)
		defer span.End()

		in, err := inputFromParams(mode, params)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		span.SetAttributes(
			attribute.String("mode", string(in.Mode)),
			attribute.Float64("principal", in.Principal),
			attribute.Float64("monthly_contribution", in.MonthlyContribution),
			attribute.Float64("monthly_withdrawal", in.MonthlyWithdrawal),
			attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
			attribute.Int("months", in.Months()),
		)

		if err := validators.CheckInput(r.deps.Config, in); err != nil {
			return nil, r.fail(span, toolName, err)
		}

		result, err := r.deps.Projector.Project(ctx, in)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		r.succeed(span, toolName,
			attribute.Float64("total_value", result.TotalValue),
			attribute.Float64("invested_amount", result.InvestedAmount),
		)

		if r.deps.Config.RoundOutput {
			return result.Rounded(), nil
		}
		return result, nil
	}
}

// emiScheduleHandler обрабатывает запрос на график погашения кредита
func (r *Registry) emiScheduleHandler() ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "emi_schedule"
		_, span := r.deps.Tracer.Start(ctx, toolName)
		defer span.End()

		principal, err := floatParam(params, calculations.FieldPrincipal, true)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}
		rate, err := floatParam(params, calculations.FieldRate, true)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}
		n, err := months(params)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		for _, check := range []error{
			validators.CheckPrincipal(r.deps.Config, principal),
			validators.CheckRate(r.deps.Config, rate),
			validators.CheckMonths(r.deps.Config, n),
		} {
			if check != nil {
				return nil, r.fail(span, toolName, check)
			}
		}

		schedule, err := calculations.EMISchedule(principal, rate, n)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		r.succeed(span, toolName, attribute.Float64("monthly_payment", schedule.Summary.MonthlyPayment))
		if r.deps.Config.RoundOutput {
			return roundSchedule(schedule), nil
		}
		return schedule, nil
	}
}

// compareHandler обрабатывает запрос на сравнение SIP и единовременного вложения
func (r *Registry) compareHandler() ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "compare_sip_lumpsum"
		_, span := r.deps.Tracer.Start(ctx, toolName)
		defer span.End()

		total, err := floatParam(params, "total_amount", true)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}
		rate, err := floatParam(params, calculations.FieldRate, true)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}
		n, err := months(params)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		for _, check := range []error{
			validators.ValidateNumberRange("total_amount", total, 0, r.deps.Config.MaxPrincipal),
			validators.CheckRate(r.deps.Config, rate),
			validators.CheckMonths(r.deps.Config, n),
		} {
			if check != nil {
				return nil, r.fail(span, toolName, check)
			}
		}

		result, err := calculations.CompareSIPLumpsum(total, rate, n)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		r.succeed(span, toolName, attribute.String("better", string(result.Better)))
		if r.deps.Config.RoundOutput {
			result.SIP = *result.SIP.Rounded()
			result.Lumpsum = *result.Lumpsum.Rounded()
			result.Difference = utils.Round2(result.Difference)
		}
		return result, nil
	}
}

// allocationHandler возвращает распределение активов по толерантности к риску
func (r *Registry) allocationHandler() ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "risk_allocation"
		_, span := r.deps.Tracer.Start(ctx, toolName)
		defer span.End()

		tolerance, err := stringParam(params, "risk_tolerance")
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		level := allocation.ParseRiskLevel(tolerance)
		r.succeed(span, toolName, attribute.String("risk", string(level)))
		return map[string]interface{}{
			"risk":       level,
			"allocation": allocation.For(level),
		}, nil
	}
}

// fundsHandler возвращает фонды справочника для уровня риска
func (r *Registry) fundsHandler() ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "funds_by_risk"
		ctx, span := r.deps.Tracer.Start(ctx, toolName)
		defer span.End()

		if r.deps.Funds == nil {
			return nil, r.fail(span, toolName, errors.New("fund catalog is not configured"))
		}

		tolerance, err := stringParam(params, "risk_tolerance")
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}
		category, err := stringParam(params, "category")
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		level := allocation.ParseRiskLevel(tolerance)
		funds, err := r.deps.Funds.ListByRisk(ctx, level)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}
		if category != "" {
			funds = catalog.Filter(funds, catalog.ByCategory(catalog.Category(category)))
		}

		r.succeed(span, toolName, attribute.String("risk", string(level)), attribute.Int("funds", len(funds)))
		return map[string]interface{}{
			"risk":  level,
			"funds": funds,
		}, nil
	}
}

// planHandler строит инвестиционный план по профилю
func (r *Registry) planHandler() ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "investment_plan"
		ctx, span := r.deps.Tracer.Start(ctx, toolName)
		defer span.End()

		var profile planner.Profile
		var err error
		if profile.RiskTolerance, err = stringParam(params, "risk_tolerance"); err != nil {
			return nil, r.fail(span, toolName, err)
		}
		if profile.Age, err = intParam(params, "age", false); err != nil {
			return nil, r.fail(span, toolName, err)
		}
		if profile.HorizonYears, err = intParam(params, "horizon_years", false); err != nil {
			return nil, r.fail(span, toolName, err)
		}
		if profile.MonthlyCapital, err = floatParam(params, "monthly_capital", true); err != nil {
			return nil, r.fail(span, toolName, err)
		}
		if err := validators.ValidateNumberRange("monthly_capital", profile.MonthlyCapital, 0, r.deps.Config.MaxContribution); err != nil {
			return nil, r.fail(span, toolName, err)
		}
		if err := validators.ValidateIntRange("horizon_years", profile.HorizonYears, 0, r.deps.Config.MaxMonths/12); err != nil {
			return nil, r.fail(span, toolName, err)
		}

		plan, err := r.deps.Planner.Build(ctx, profile)
		if err != nil {
			return nil, r.fail(span, toolName, err)
		}

		r.succeed(span, toolName,
			attribute.String("risk", string(plan.Risk)),
			attribute.Int("horizon_years", plan.HorizonYears),
		)
		if r.deps.Config.RoundOutput {
			for i := range plan.Sleeves {
				if plan.Sleeves[i].Projection != nil {
					plan.Sleeves[i].Projection = plan.Sleeves[i].Projection.Rounded()
				}
			}
			plan.Invested = utils.Round2(plan.Invested)
			plan.TotalValue = utils.Round2(plan.TotalValue)
		}
		return plan, nil
	}
}

func roundSchedule(s *calculations.LoanSchedule) *calculations.LoanSchedule {
	out := &calculations.LoanSchedule{
		Summary:  s.Summary,
		Schedule: make([]calculations.ScheduleEntry, len(s.Schedule)),
	}
	out.Summary.MonthlyPayment = utils.Round2(s.Summary.MonthlyPayment)
	out.Summary.TotalPaid = utils.Round2(s.Summary.TotalPaid)
	out.Summary.TotalInterest = utils.Round2(s.Summary.TotalInterest)
	for i, e := range s.Schedule {
		out.Schedule[i] = calculations.ScheduleEntry{
			Month:               e.Month,
			Payment:             utils.Round2(e.Payment),
			Interest:            utils.Round2(e.Interest),
			PrincipalComponent:  utils.Round2(e.PrincipalComponent),
			RemainingPrincipal:  utils.Round2(e.RemainingPrincipal),
			CumulativeInterest:  utils.Round2(e.CumulativeInterest),
			CumulativePrincipal: utils.Round2(e.CumulativePrincipal),
		}
	}
	return out
}
