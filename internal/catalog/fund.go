// Package catalog предоставляет справочник фондов только для чтения.
package catalog

import (
	"context"
	"strings"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
)

// Category класс активов фонда
type Category string

const (
	CategoryEquity Category = "equity"
	CategoryDebt   Category = "debt"
	CategoryGold   Category = "gold"
	CategoryHybrid Category = "hybrid"
)

// Returns историческая доходность в процентах по горизонтам
type Returns struct {
	OneYear   float64 `json:"one_year"`
	ThreeYear float64 `json:"three_year"`
	FiveYear  float64 `json:"five_year"`
}

// FundRecord запись справочника фондов
type FundRecord struct {
	Name          string               `json:"name"`
	Category      Category             `json:"category"`
	NAV           float64              `json:"nav"`
	Returns       Returns              `json:"returns"`
	Risk          allocation.RiskLevel `json:"risk"`
	MinInvestment float64              `json:"min_investment"`
}

// Store источник записей справочника
type Store interface {
	List(ctx context.Context) ([]FundRecord, error)
	ListByRisk(ctx context.Context, level allocation.RiskLevel) ([]FundRecord, error)
}

// Filter возвращает записи, удовлетворяющие pred
func Filter(records []FundRecord, pred func(FundRecord) bool) []FundRecord {
	out := make([]FundRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByRisk предикат по уровню риска
func ByRisk(level allocation.RiskLevel) func(FundRecord) bool {
	return func(r FundRecord) bool { return r.Risk == level }
}

// ByCategory предикат по классу активов
func ByCategory(c Category) func(FundRecord) bool {
	return func(r FundRecord) bool { return r.Category == c }
}

// rawFund запись в том виде, в каком она приходит из источника.
// Доходность встречается под ключами "1y" и "oneYear" и т.п.
type rawFund struct {
	Name          string             `yaml:"name"`
	Category      string             `yaml:"category"`
	NAV           float64            `yaml:"nav"`
	Returns       map[string]float64 `yaml:"returns"`
	Risk          string             `yaml:"risk"`
	MinInvestment float64            `yaml:"min_investment"`
}

var returnKeys = map[string][]string{
	"1y": {"1y", "oneYear", "one_year"},
	"3y": {"3y", "threeYear", "three_year"},
	"5y": {"5y", "fiveYear", "five_year"},
}

func pickReturn(values map[string]float64, horizon string) float64 {
	for _, key := range returnKeys[horizon] {
		if v, ok := values[key]; ok {
			return v
		}
	}
	return 0
}

// normalize приводит запись к каноническому набору полей
func (r rawFund) normalize() FundRecord {
	return FundRecord{
		Name:     strings.TrimSpace(r.Name),
		Category: Category(strings.ToLower(strings.TrimSpace(r.Category))),
		NAV:      r.NAV,
		Returns: Returns{
			OneYear:   pickReturn(r.Returns, "1y"),
			ThreeYear: pickReturn(r.Returns, "3y"),
			FiveYear:  pickReturn(r.Returns, "5y"),
		},
		Risk:          allocation.ParseRiskLevel(r.Risk),
		MinInvestment: r.MinInvestment,
	}
}
