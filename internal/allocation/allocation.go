// Package allocation сопоставляет уровень риска целевому распределению активов.
package allocation

import "strings"

// RiskLevel уровень толерантности к риску
type RiskLevel string

const (
	Conservative RiskLevel = "conservative"
	Moderate     RiskLevel = "moderate"
	Aggressive   RiskLevel = "aggressive"
)

// Levels возвращает уровни в порядке возрастания риска
func Levels() []RiskLevel {
	return []RiskLevel{Conservative, Moderate, Aggressive}
}

// Allocation целевое распределение в процентах, сумма всегда 100
type Allocation struct {
	Equity int `json:"equity_percent"`
	Debt   int `json:"debt_percent"`
	Gold   int `json:"gold_percent"`
}

var allocations = map[RiskLevel]Allocation{
	Aggressive:   {Equity: 75, Debt: 15, Gold: 10},
	Moderate:     {Equity: 60, Debt: 30, Gold: 10},
	Conservative: {Equity: 40, Debt: 50, Gold: 10},
}

// ParseRiskLevel никогда не возвращает ошибку: нераспознанный ввод дает Moderate
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aggressive", "high":
		return Aggressive
	case "conservative", "low":
		return Conservative
	default:
		return Moderate
	}
}

// For возвращает распределение для уровня риска
func For(level RiskLevel) Allocation {
	if a, ok := allocations[level]; ok {
		return a
	}
	return allocations[Moderate]
}

// ForTolerance разбирает строку толерантности и возвращает распределение
func ForTolerance(tolerance string) Allocation {
	return For(ParseRiskLevel(tolerance))
}

// Split делит сумму по классам активов
func (a Allocation) Split(amount float64) (equity, debt, gold float64) {
	return amount * float64(a.Equity) / 100,
		amount * float64(a.Debt) / 100,
		amount * float64(a.Gold) / 100
}

// Total возвращает сумму долей
func (a Allocation) Total() int {
	return a.Equity + a.Debt + a.Gold
}
