package tools

import (
	"math"
	"strings"

	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
)

// Параметры приходят из JSON, поэтому все числа имеют тип float64

func floatParam(params map[string]interface{}, name string, required bool) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		if required {
			return 0, &calculations.InvalidParameterError{Field: name, Reason: "обязательный параметр"}
		}
		return 0, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return 0, &calculations.InvalidParameterError{Field: name, Value: raw, Reason: "ожидается число"}
	}
	return value, nil
}

func intParam(params map[string]interface{}, name string, required bool) (int, error) {
	value, err := floatParam(params, name, required)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, &calculations.InvalidParameterError{Field: name, Value: value, Reason: "ожидается целое число"}
	}
	return int(value), nil
}

func stringParam(params map[string]interface{}, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", &calculations.InvalidParameterError{Field: name, Value: raw, Reason: "ожидается строка"}
	}
	return strings.TrimSpace(value), nil
}

// inputFromParams собирает CalculatorInput; для режима читаются только нужные ему поля
func inputFromParams(mode calculations.Mode, params map[string]interface{}) (calculations.CalculatorInput, error) {
	in := calculations.CalculatorInput{Mode: mode}
	var err error

	if in.AnnualRatePercent, err = floatParam(params, calculations.FieldRate, true); err != nil {
		return in, err
	}
	if in.TenureYears, err = intParam(params, calculations.FieldTenureYears, false); err != nil {
		return in, err
	}
	if in.TenureMonths, err = intParam(params, calculations.FieldTenureMonths, false); err != nil {
		return in, err
	}

	switch mode {
	case calculations.ModeSIP:
		in.MonthlyContribution, err = floatParam(params, calculations.FieldContribution, true)
	case calculations.ModeLumpsum, calculations.ModeFD, calculations.ModeEMI:
		in.Principal, err = floatParam(params, calculations.FieldPrincipal, true)
	case calculations.ModeSWP:
		if in.Principal, err = floatParam(params, calculations.FieldPrincipal, true); err != nil {
			return in, err
		}
		in.MonthlyWithdrawal, err = floatParam(params, calculations.FieldWithdrawal, true)
	case calculations.ModeMF:
		if in.Principal, err = floatParam(params, calculations.FieldPrincipal, false); err != nil {
			return in, err
		}
		in.MonthlyContribution, err = floatParam(params, calculations.FieldContribution, false)
	}
	return in, err
}

// months возвращает срок в месяцах из tenure_years/tenure_months
func months(params map[string]interface{}) (int, error) {
	years, err := intParam(params, calculations.FieldTenureYears, false)
	if err != nil {
		return 0, err
	}
	m, err := intParam(params, calculations.FieldTenureMonths, false)
	if err != nil {
		return 0, err
	}
	return years*12 + m, nil
}
