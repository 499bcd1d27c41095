package calculations

import (
	"math"
)

// growthMetrics рассчитывает ROI и среднегодовую доходность для роста паевого фонда
func growthMetrics(in CalculatorInput, final SeriesPoint) *GrowthMetrics {
	totalInvested := final.Invested
	finalValue := final.Value
	capitalGain := finalValue - totalInvested

	var roiPercent float64
	if totalInvested > 0 {
		roiPercent = capitalGain / totalInvested * 100
	}

	// Среднегодовая доходность имеет смысл только при начальном вложении:
	// для чистого SIP деньги работают разный срок.
	years := float64(in.Months()) / 12.0
	var annualized float64
	if years > 0 && in.Principal > 0 && totalInvested > 0 {
		annualized = (math.Pow(finalValue/totalInvested, 1.0/years) - 1.0) * 100
	}

	var profitPercent float64
	if finalValue > 0 {
		profitPercent = capitalGain / finalValue * 100
	}

	return &GrowthMetrics{
		ROIPercent:              roiPercent,
		AnnualizedReturnPercent: annualized,
		CapitalGain:             capitalGain,
		ProfitPercent:           profitPercent,
		TotalInvested:           totalInvested,
		FinalValue:              finalValue,
		Years:                   years,
	}
}

// MutualFundGrowth рассчитывает рост фонда при начальном вложении и ежемесячных взносах
func MutualFundGrowth(principal, monthlyContribution, annualRatePercent float64, months int) (*ProjectionResult, error) {
	return Calculate(withTenure(CalculatorInput{
		Mode:                ModeMF,
		Principal:           principal,
		MonthlyContribution: monthlyContribution,
		AnnualRatePercent:   annualRatePercent,
	}, months))
}

// withTenure раскладывает срок в месяцах так, чтобы кратные году сроки давали годовой ряд
func withTenure(in CalculatorInput, months int) CalculatorInput {
	if months > 0 && months%12 == 0 {
		in.TenureYears = months / 12
		in.TenureMonths = 0
	} else {
		in.TenureYears = 0
		in.TenureMonths = months
	}
	return in
}
