package calculations

import (
	"slices"

	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// Calculate выполняет расчет для режима in.Mode.
// Итоговые значения берутся из последней точки ряда, так что
// Series(in) и Calculate(in) всегда согласованы.
func Calculate(in CalculatorInput) (*ProjectionResult, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}
	seq, err := Series(in)
	if err != nil {
		return nil, err
	}

	series := slices.Collect(seq)
	last := series[len(series)-1]

	result := &ProjectionResult{
		Mode:           in.Mode,
		InvestedAmount: last.Invested,
		TotalValue:     last.Value,
		Series:         series,
	}

	switch in.Mode {
	case ModeEMI:
		result.MonthlyEMI = emi(in.Principal, in.MonthlyRate(), in.Months())
		result.TotalInterest = last.Value - last.Invested
		result.EstimatedReturns = result.TotalInterest
	case ModeSWP:
		result.TotalWithdrawn = last.Withdrawn
		result.EstimatedReturns = last.Withdrawn + last.Value - last.Invested
	case ModeMF:
		result.EstimatedReturns = last.Value - last.Invested
		result.Growth = growthMetrics(in, last)
	default:
		result.EstimatedReturns = last.Value - last.Invested
	}

	return result, nil
}

// Rounded возвращает копию результата с суммами, округленными до копеек.
// Предназначена только для вывода.
func (r *ProjectionResult) Rounded() *ProjectionResult {
	out := *r
	out.InvestedAmount = utils.Round2(r.InvestedAmount)
	out.EstimatedReturns = utils.Round2(r.EstimatedReturns)
	out.TotalValue = utils.Round2(r.TotalValue)
	out.MonthlyEMI = utils.Round2(r.MonthlyEMI)
	out.TotalInterest = utils.Round2(r.TotalInterest)
	out.TotalWithdrawn = utils.Round2(r.TotalWithdrawn)

	if r.Growth != nil {
		g := *r.Growth
		g.ROIPercent = utils.Round2(g.ROIPercent)
		g.AnnualizedReturnPercent = utils.Round2(g.AnnualizedReturnPercent)
		g.CapitalGain = utils.Round2(g.CapitalGain)
		g.ProfitPercent = utils.Round2(g.ProfitPercent)
		g.TotalInvested = utils.Round2(g.TotalInvested)
		g.FinalValue = utils.Round2(g.FinalValue)
		g.Years = utils.Round2(g.Years)
		out.Growth = &g
	}

	out.Series = make([]SeriesPoint, len(r.Series))
	for i, p := range r.Series {
		out.Series[i] = SeriesPoint{
			Period:    p.Period,
			Invested:  utils.Round2(p.Invested),
			Value:     utils.Round2(p.Value),
			Withdrawn: utils.Round2(p.Withdrawn),
		}
	}
	return &out
}
