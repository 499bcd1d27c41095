package calculations

import (
	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

func checkLoan(principal, annualRatePercent float64, months int) error {
	if err := checkPositiveAmount(FieldPrincipal, principal); err != nil {
		return err
	}
	if err := checkRate(annualRatePercent); err != nil {
		return err
	}
	if annualRatePercent == 0 {
		return invalid(FieldRate, annualRatePercent, "ставка по кредиту должна быть > 0")
	}
	return checkMonths(months)
}

// MonthlyEMI рассчитывает аннуитетный платеж по методу уменьшающегося остатка
func MonthlyEMI(principal, annualRatePercent float64, months int) (float64, error) {
	if err := checkLoan(principal, annualRatePercent, months); err != nil {
		return 0, err
	}
	return emi(principal, monthlyRate(annualRatePercent), months), nil
}

// OutstandingBalance возвращает остаток долга после paid платежей
func OutstandingBalance(principal, annualRatePercent float64, months, paid int) (float64, error) {
	if err := checkLoan(principal, annualRatePercent, months); err != nil {
		return 0, err
	}
	if paid < 0 || paid > months {
		return 0, invalid(FieldPeriod, paid, "номер платежа вне срока кредита")
	}
	return balanceAfter(principal, monthlyRate(annualRatePercent), months, paid), nil
}

// EMISchedule рассчитывает помесячный график аннуитетного кредита.
// Последний платеж закрывает остаток целиком.
func EMISchedule(principal, annualRatePercent float64, months int) (*LoanSchedule, error) {
	if err := checkLoan(principal, annualRatePercent, months); err != nil {
		return nil, err
	}

	r := monthlyRate(annualRatePercent)
	payment := emi(principal, r, months)

	schedule := make([]ScheduleEntry, 0, months)
	remaining := principal
	cumI := 0.0
	cumP := 0.0
	totalPaid := 0.0

	for m := 1; m <= months; m++ {
		interest := remaining * r
		principalComponent := payment - interest
		monthly := payment

		if m == months {
			principalComponent = remaining
			monthly = principalComponent + interest
		}

		remaining -= principalComponent
		cumI += interest
		cumP += principalComponent
		totalPaid += monthly

		schedule = append(schedule, ScheduleEntry{
			Month:               m,
			Payment:             monthly,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  utils.ClampZero(remaining),
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})
	}

	return &LoanSchedule{
		Summary: LoanSummary{
			Principal:         principal,
			AnnualRatePercent: annualRatePercent,
			Months:            months,
			MonthlyPayment:    payment,
			TotalPaid:         totalPaid,
			TotalInterest:     cumI,
		},
		Schedule: schedule,
	}, nil
}
