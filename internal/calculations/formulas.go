package calculations

import (
	"math"

	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// Ниже этого значения месячная ставка считается нулевой,
// и аннуитетные формулы переходят к линейному пределу.
const zeroRateEpsilon = 1e-12

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100.0 / 12.0
}

func growth(r float64, n int) float64 {
	return math.Pow(1.0+r, float64(n))
}

func sipFV(contribution, r float64, n int) float64 {
	if r < zeroRateEpsilon {
		return contribution * float64(n)
	}
	return contribution * ((growth(r, n) - 1.0) * (1.0 + r)) / r
}

func lumpsumFV(principal, r float64, n int) float64 {
	if r < zeroRateEpsilon {
		return principal
	}
	return principal * growth(r, n)
}

func emi(principal, r float64, n int) float64 {
	if r < zeroRateEpsilon {
		return principal / float64(n)
	}
	g := growth(r, n)
	return principal * r * g / (g - 1.0)
}

// balanceAfter возвращает остаток долга после paid платежей из n
func balanceAfter(principal, r float64, n, paid int) float64 {
	if paid >= n {
		return 0
	}
	payment := emi(principal, r, n)
	if r < zeroRateEpsilon {
		return utils.ClampZero(principal - payment*float64(paid))
	}
	g := growth(r, paid)
	return utils.ClampZero(principal*g - payment*(g-1.0)/r)
}

// fdMaturity капитализирует ежегодно, срок может быть дробным числом лет
func fdMaturity(principal, annualRatePercent float64, months int) float64 {
	years := float64(months) / 12.0
	return principal * math.Pow(1.0+annualRatePercent/100.0, years)
}

// swpBalance может быть отрицательным; обрезка до нуля делается при выдаче
func swpBalance(corpus, withdrawal, r float64, n int) float64 {
	if r < zeroRateEpsilon {
		return corpus - withdrawal*float64(n)
	}
	g := growth(r, n)
	return corpus*g - withdrawal*((g-1.0)/r)*(1.0+r)
}

// SIPFutureValue рассчитывает будущую стоимость регулярных взносов (аннуитет пренумерандо)
func SIPFutureValue(contribution, annualRatePercent float64, months int) (float64, error) {
	if err := checkAmount(FieldContribution, contribution); err != nil {
		return 0, err
	}
	if err := checkRate(annualRatePercent); err != nil {
		return 0, err
	}
	if err := checkMonths(months); err != nil {
		return 0, err
	}
	return sipFV(contribution, monthlyRate(annualRatePercent), months), nil
}

// LumpsumFutureValue рассчитывает рост единовременного вложения с ежемесячной капитализацией
func LumpsumFutureValue(principal, annualRatePercent float64, months int) (float64, error) {
	if err := checkAmount(FieldPrincipal, principal); err != nil {
		return 0, err
	}
	if err := checkRate(annualRatePercent); err != nil {
		return 0, err
	}
	if err := checkMonths(months); err != nil {
		return 0, err
	}
	return lumpsumFV(principal, monthlyRate(annualRatePercent), months), nil
}

// FDMaturity рассчитывает сумму вклада к погашению
func FDMaturity(principal, annualRatePercent float64, months int) (float64, error) {
	if err := checkAmount(FieldPrincipal, principal); err != nil {
		return 0, err
	}
	if err := checkRate(annualRatePercent); err != nil {
		return 0, err
	}
	if err := checkMonths(months); err != nil {
		return 0, err
	}
	return fdMaturity(principal, annualRatePercent, months), nil
}

// SWPBalance рассчитывает остаток капитала после n ежемесячных снятий.
// Результат не обрезается: отрицательное значение означает, что капитал исчерпан.
func SWPBalance(corpus, withdrawal, annualRatePercent float64, months int) (float64, error) {
	if err := checkAmount(FieldPrincipal, corpus); err != nil {
		return 0, err
	}
	if err := checkAmount(FieldWithdrawal, withdrawal); err != nil {
		return 0, err
	}
	if err := checkRate(annualRatePercent); err != nil {
		return 0, err
	}
	if err := checkMonths(months); err != nil {
		return 0, err
	}
	return swpBalance(corpus, withdrawal, monthlyRate(annualRatePercent), months), nil
}
