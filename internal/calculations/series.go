package calculations

import (
	"iter"

	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// Series возвращает ленивый ряд точек 0..Periods().
// Каждая точка считается по замкнутой формуле независимо от предыдущих,
// поэтому ряд можно перебирать повторно и в любом порядке через PointAt.
func Series(in CalculatorInput) (iter.Seq[SeriesPoint], error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}
	periods := in.Periods()
	return func(yield func(SeriesPoint) bool) {
		for i := 0; i <= periods; i++ {
			if !yield(pointAt(in, i)) {
				return
			}
		}
	}, nil
}

// PointAt возвращает точку ряда для периода period
func PointAt(in CalculatorInput, period int) (SeriesPoint, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return SeriesPoint{}, err
	}
	if period < 0 || period > in.Periods() {
		return SeriesPoint{}, invalid(FieldPeriod, period, "период вне срока")
	}
	return pointAt(in, period), nil
}

// pointAt ожидает уже проверенные параметры
func pointAt(in CalculatorInput, period int) SeriesPoint {
	if period == 0 {
		return SeriesPoint{}
	}

	n := period * in.periodMonths()
	r := in.MonthlyRate()
	p := SeriesPoint{Period: period}

	switch in.Mode {
	case ModeSIP:
		p.Invested = in.MonthlyContribution * float64(n)
		p.Value = sipFV(in.MonthlyContribution, r, n)
	case ModeLumpsum:
		p.Invested = in.Principal
		p.Value = lumpsumFV(in.Principal, r, n)
	case ModeFD:
		p.Invested = in.Principal
		p.Value = fdMaturity(in.Principal, in.AnnualRatePercent, n)
	case ModeMF:
		p.Invested = in.Principal + in.MonthlyContribution*float64(n)
		p.Value = lumpsumFV(in.Principal, r, n) + sipFV(in.MonthlyContribution, r, n)
	case ModeEMI:
		// Invested: погашенная часть тела кредита, Value: сумма выплаченных платежей
		total := in.Months()
		p.Invested = in.Principal - balanceAfter(in.Principal, r, total, n)
		p.Value = emi(in.Principal, r, total) * float64(n)
	case ModeSWP:
		p.Invested = in.Principal
		p.Value = utils.ClampZero(swpBalance(in.Principal, in.MonthlyWithdrawal, r, n))
		p.Withdrawn = in.MonthlyWithdrawal * float64(n)
	}
	return p
}
