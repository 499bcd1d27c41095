package calculations

// CompareSIPLumpsum сравнивает единовременное вложение суммы total с SIP,
// в котором та же сумма вносится равными частями за months месяцев.
func CompareSIPLumpsum(total, annualRatePercent float64, months int) (*ComparisonResult, error) {
	if err := checkPositiveAmount(FieldPrincipal, total); err != nil {
		return nil, err
	}
	if err := checkMonths(months); err != nil {
		return nil, err
	}

	sip, err := Calculate(withTenure(CalculatorInput{
		Mode:                ModeSIP,
		MonthlyContribution: total / float64(months),
		AnnualRatePercent:   annualRatePercent,
	}, months))
	if err != nil {
		return nil, err
	}

	lumpsum, err := Calculate(withTenure(CalculatorInput{
		Mode:              ModeLumpsum,
		Principal:         total,
		AnnualRatePercent: annualRatePercent,
	}, months))
	if err != nil {
		return nil, err
	}

	diff := lumpsum.TotalValue - sip.TotalValue

	var better Mode
	var recommendation string
	switch {
	case diff > 0:
		better = ModeLumpsum
		recommendation = "Lumpsum grows more when the full amount is available today; SIP spreads market-entry risk across months."
	case diff < 0:
		better = ModeSIP
		recommendation = "SIP ends higher for these parameters."
	default:
		recommendation = "Both options end with the same value."
	}

	return &ComparisonResult{
		TotalAmount:    total,
		SIP:            *sip,
		Lumpsum:        *lumpsum,
		Difference:     diff,
		Better:         better,
		Recommendation: recommendation,
	}, nil
}
