package validators

import (
	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/internal/config"
	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// Ограничения сверху берутся из конфигурации; базовые проверки
// (неотрицательность, срок > 0) выполняет сам пакет calculations.

// ValidateNumberRange проверяет, что число конечно и лежит в [min; max]
func ValidateNumberRange(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return &calculations.InvalidParameterError{Field: name, Value: value, Reason: "значение не является конечным числом"}
	}
	if value < minInclusive {
		return &calculations.InvalidParameterError{Field: name, Value: value, Reason: "значение меньше допустимого"}
	}
	if value > maxInclusive {
		return &calculations.InvalidParameterError{Field: name, Value: value, Reason: "значение слишком велико"}
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return &calculations.InvalidParameterError{Field: name, Value: value, Reason: "значение вне допустимого диапазона"}
	}
	return nil
}

// CheckPrincipal проверяет сумму вложения или кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidateNumberRange(calculations.FieldPrincipal, principal, 0, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateNumberRange(calculations.FieldRate, rate, 0, cfg.MaxRate)
}

// CheckMonths проверяет срок в месяцах
func CheckMonths(cfg *config.Config, months int) error {
	return ValidateIntRange(calculations.FieldTenure, months, 1, cfg.MaxMonths)
}

// CheckContribution проверяет ежемесячный взнос
func CheckContribution(cfg *config.Config, contribution float64) error {
	return ValidateNumberRange(calculations.FieldContribution, contribution, 0, cfg.MaxContribution)
}

// CheckWithdrawal проверяет ежемесячное снятие
func CheckWithdrawal(cfg *config.Config, withdrawal float64) error {
	return ValidateNumberRange(calculations.FieldWithdrawal, withdrawal, 0, cfg.MaxContribution)
}

// CheckInput применяет ограничения конфигурации ко всем полям расчета
func CheckInput(cfg *config.Config, in calculations.CalculatorInput) error {
	if err := CheckPrincipal(cfg, in.Principal); err != nil {
		return err
	}
	if err := CheckContribution(cfg, in.MonthlyContribution); err != nil {
		return err
	}
	if err := CheckWithdrawal(cfg, in.MonthlyWithdrawal); err != nil {
		return err
	}
	if err := CheckRate(cfg, in.AnnualRatePercent); err != nil {
		return err
	}
	return CheckMonths(cfg, in.Months())
}
