package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
)

func TestCalcParams(t *testing.T) {
	cmd := calculatorCmd("swp", "", "swp_calculator", calculations.FieldPrincipal, calculations.FieldWithdrawal)
	if err := cmd.Flags().Parse([]string{"--principal", "1000000", "--withdrawal", "10000", "--rate", "12", "--years", "10"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	params, err := calcParams(cmd, []string{calculations.FieldPrincipal, calculations.FieldWithdrawal})
	if err != nil {
		t.Fatalf("calcParams: %v", err)
	}

	want := map[string]float64{
		calculations.FieldPrincipal:    1000000,
		calculations.FieldWithdrawal:   10000,
		calculations.FieldRate:         12,
		calculations.FieldTenureYears:  10,
		calculations.FieldTenureMonths: 0,
	}
	for k, v := range want {
		if params[k] != v {
			t.Errorf("params[%q] = %v, want %v", k, params[k], v)
		}
	}
}

func TestCalcParamsOmitsUnsetAmounts(t *testing.T) {
	cmd := calculatorCmd("sip", "", "sip_calculator", calculations.FieldContribution)
	if err := cmd.Flags().Parse([]string{"--years", "1"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	params, err := calcParams(cmd, []string{calculations.FieldContribution})
	if err != nil {
		t.Fatalf("calcParams: %v", err)
	}
	if _, ok := params[calculations.FieldContribution]; ok {
		t.Error("unset contribution must not be sent")
	}
	if _, ok := params[calculations.FieldRate]; ok {
		t.Error("unset rate must not be sent")
	}
}

func TestPrintProjection(t *testing.T) {
	res, err := calculations.Calculate(calculations.CalculatorInput{
		Mode:              calculations.ModeEMI,
		Principal:         1000000,
		AnnualRatePercent: 6.5,
		TenureYears:       5,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	var buf bytes.Buffer
	if err := printProjection(&buf, res, true); err != nil {
		t.Fatalf("printProjection: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Monthly EMI", "₹19,566", "Period"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}
