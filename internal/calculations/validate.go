package calculations

import (
	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// Имена параметров в том виде, в каком их принимают инструменты и API
const (
	FieldMode         = "mode"
	FieldPrincipal    = "principal"
	FieldContribution = "monthly_contribution"
	FieldWithdrawal   = "monthly_withdrawal"
	FieldRate         = "annual_rate_percent"
	FieldTenure       = "tenure"
	FieldTenureYears  = "tenure_years"
	FieldTenureMonths = "tenure_months"
	FieldPeriod       = "period"
)

func checkAmount(field string, value float64) error {
	if !utils.IsFinite(value) {
		return invalid(field, value, "значение не является конечным числом")
	}
	if value < 0 {
		return invalid(field, value, "значение должно быть ≥ 0")
	}
	return nil
}

func checkPositiveAmount(field string, value float64) error {
	if err := checkAmount(field, value); err != nil {
		return err
	}
	if value == 0 {
		return invalid(field, value, "значение должно быть > 0")
	}
	return nil
}

func checkRate(rate float64) error {
	return checkAmount(FieldRate, rate)
}

func checkMonths(months int) error {
	if months <= 0 {
		return invalid(FieldTenure, months, "срок должен быть больше нуля")
	}
	return nil
}

// normalizeInput приводит режим к каноническому виду и проверяет параметры.
// Дальше по цепочке используется только возвращенное значение.
func normalizeInput(in CalculatorInput) (CalculatorInput, error) {
	mode, err := ParseMode(string(in.Mode))
	if err != nil {
		return in, err
	}
	in.Mode = mode
	return in, validateInput(in)
}

// validateInput проверяет набор параметров целиком, включая требования режима.
// Режим должен быть уже канонический.
func validateInput(in CalculatorInput) error {
	if in.TenureYears < 0 {
		return invalid(FieldTenureYears, in.TenureYears, "значение должно быть ≥ 0")
	}
	if in.TenureMonths < 0 {
		return invalid(FieldTenureMonths, in.TenureMonths, "значение должно быть ≥ 0")
	}
	if err := checkMonths(in.Months()); err != nil {
		return err
	}
	if err := checkRate(in.AnnualRatePercent); err != nil {
		return err
	}
	if err := checkAmount(FieldPrincipal, in.Principal); err != nil {
		return err
	}
	if err := checkAmount(FieldContribution, in.MonthlyContribution); err != nil {
		return err
	}
	if err := checkAmount(FieldWithdrawal, in.MonthlyWithdrawal); err != nil {
		return err
	}

	switch in.Mode {
	case ModeSIP:
		return checkPositiveAmount(FieldContribution, in.MonthlyContribution)
	case ModeLumpsum, ModeFD, ModeSWP:
		return checkPositiveAmount(FieldPrincipal, in.Principal)
	case ModeEMI:
		if in.AnnualRatePercent == 0 {
			return invalid(FieldRate, in.AnnualRatePercent, "ставка по кредиту должна быть > 0")
		}
		return checkPositiveAmount(FieldPrincipal, in.Principal)
	case ModeMF:
		if in.Principal == 0 && in.MonthlyContribution == 0 {
			return invalid(FieldPrincipal, in.Principal, "нужна начальная сумма или ежемесячный взнос")
		}
		return nil
	default:
		return invalid(FieldMode, in.Mode, "неизвестный режим калькулятора")
	}
}
