package utils

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	crore = 10_000_000
	lakh  = 100_000
)

var (
	croreDivisor = decimal.NewFromInt(crore)
	lakhDivisor  = decimal.NewFromInt(lakh)
	hundred      = decimal.NewFromInt(100)
	printer      = message.NewPrinter(language.English)
)

// FormatAmount сокращает сумму до крор/лакхов.
// ≥ 1 Cr → "5.82 Cr", ≥ 1 L → "58.19 L", иначе целое с разделителями ("6,850").
func FormatAmount(amount float64) string {
	if !IsFinite(amount) {
		return "0"
	}

	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := decimal.NewFromFloat(math.Abs(amount))

	// разряд выбирается по округленному значению
	whole := abs.Round(0)
	if whole.LessThan(lakhDivisor) {
		if whole.IsZero() {
			return "0"
		}
		return sign + printer.Sprintf("%d", whole.IntPart())
	}
	lakhs := abs.Div(lakhDivisor).Round(2)
	if lakhs.LessThan(hundred) {
		return sign + lakhs.StringFixed(2) + " L"
	}
	return sign + abs.Div(croreDivisor).StringFixed(2) + " Cr"
}

// FormatRupees добавляет знак рупии к FormatAmount
func FormatRupees(amount float64) string {
	if amount < 0 {
		return "-₹" + FormatAmount(-amount)
	}
	return "₹" + FormatAmount(amount)
}

// FormatPercent форматирует процент с двумя знаками.
// Ноль и неопределенные значения выводятся как "0%".
func FormatPercent(pct float64) string {
	if pct == 0 || !IsFinite(pct) {
		return "0%"
	}
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}
