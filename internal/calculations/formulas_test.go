package calculations

import (
	"errors"
	"testing"
)

func TestFormulas(t *testing.T) {
	sip, err := SIPFutureValue(25000, 12, 120)
	if err != nil {
		t.Fatalf("SIPFutureValue() error = %v", err)
	}
	approx(t, "sip", sip, 5808476.9088, 0.01)

	lump, err := LumpsumFutureValue(100000, 12, 120)
	if err != nil {
		t.Fatalf("LumpsumFutureValue() error = %v", err)
	}
	approx(t, "lumpsum", lump, 330038.6895, 0.01)

	fd, err := FDMaturity(5000, 6.5, 60)
	if err != nil {
		t.Fatalf("FDMaturity() error = %v", err)
	}
	approx(t, "fd", fd, 6850.4333, 0.001)

	swp, err := SWPBalance(100000, 5000, 12, 120)
	if err != nil {
		t.Fatalf("SWPBalance() error = %v", err)
	}
	if swp >= 0 {
		t.Errorf("raw SWP balance should be negative when withdrawals exceed growth, got %f", swp)
	}

	zero, err := SIPFutureValue(500, 0, 24)
	if err != nil {
		t.Fatalf("SIPFutureValue() zero rate error = %v", err)
	}
	if zero != 12000 {
		t.Errorf("expected linear 12000, got %f", zero)
	}
}

func TestFormulaValidation(t *testing.T) {
	tests := []struct {
		name      string
		call      func() error
		wantField string
	}{
		{
			name:      "sip negative contribution",
			call:      func() error { _, err := SIPFutureValue(-1, 10, 12); return err },
			wantField: FieldContribution,
		},
		{
			name:      "lumpsum zero months",
			call:      func() error { _, err := LumpsumFutureValue(100, 10, 0); return err },
			wantField: FieldTenure,
		},
		{
			name:      "emi zero months",
			call:      func() error { _, err := MonthlyEMI(100000, 10, 0); return err },
			wantField: FieldTenure,
		},
		{
			name:      "emi zero rate",
			call:      func() error { _, err := MonthlyEMI(100000, 0, 12); return err },
			wantField: FieldRate,
		},
		{
			name:      "swp negative withdrawal",
			call:      func() error { _, err := SWPBalance(1000, -5, 10, 12); return err },
			wantField: FieldWithdrawal,
		},
		{
			name:      "balance past tenure",
			call:      func() error { _, err := OutstandingBalance(1000, 10, 12, 13); return err },
			wantField: FieldPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
			if perr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, perr.Field)
			}
		})
	}
}

func TestEMISchedule(t *testing.T) {
	result, err := EMISchedule(1000000, 12, 12)
	if err != nil {
		t.Fatalf("EMISchedule() error = %v", err)
	}

	if len(result.Schedule) != 12 {
		t.Errorf("expected 12 months, got %d", len(result.Schedule))
	}
	if result.Summary.TotalPaid <= result.Summary.Principal {
		t.Error("total paid should be greater than principal")
	}

	lastMonth := result.Schedule[len(result.Schedule)-1]
	if lastMonth.RemainingPrincipal != 0 {
		t.Errorf("expected remaining principal 0, got %f", lastMonth.RemainingPrincipal)
	}
	approx(t, "cumulative principal", lastMonth.CumulativePrincipal, 1000000, 1e-6)
	approx(t, "total paid", result.Summary.TotalPaid, result.Summary.MonthlyPayment*12, 1e-6)

	if result.Schedule[0].Interest <= lastMonth.Interest {
		t.Error("interest share should decrease over the loan")
	}
}

func TestOutstandingBalance(t *testing.T) {
	schedule, err := EMISchedule(500000, 9, 36)
	if err != nil {
		t.Fatalf("EMISchedule() error = %v", err)
	}

	for _, paid := range []int{1, 12, 24, 35} {
		got, err := OutstandingBalance(500000, 9, 36, paid)
		if err != nil {
			t.Fatalf("OutstandingBalance() error = %v", err)
		}
		approx(t, "balance", got, schedule.Schedule[paid-1].RemainingPrincipal, 1e-4)
	}
}

func TestCompareSIPLumpsum(t *testing.T) {
	res, err := CompareSIPLumpsum(1200000, 12, 120)
	if err != nil {
		t.Fatalf("CompareSIPLumpsum() error = %v", err)
	}
	if res.Better != ModeLumpsum {
		t.Errorf("expected lumpsum to be better at positive rate, got %q", res.Better)
	}
	if res.SIP.InvestedAmount != res.Lumpsum.InvestedAmount {
		t.Errorf("both options should invest the same amount: %f vs %f", res.SIP.InvestedAmount, res.Lumpsum.InvestedAmount)
	}

	flat, err := CompareSIPLumpsum(1200, 0, 12)
	if err != nil {
		t.Fatalf("CompareSIPLumpsum() zero rate error = %v", err)
	}
	if flat.Difference != 0 || flat.Better != "" {
		t.Errorf("expected a tie at zero rate, got diff %f better %q", flat.Difference, flat.Better)
	}
}
