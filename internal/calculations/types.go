package calculations

import "strings"

// Mode определяет тип калькулятора
type Mode string

const (
	ModeSIP     Mode = "sip"
	ModeLumpsum Mode = "lumpsum"
	ModeEMI     Mode = "emi"
	ModeFD      Mode = "fd"
	ModeSWP     Mode = "swp"
	ModeMF      Mode = "mf"
)

// Modes возвращает все поддерживаемые режимы
func Modes() []Mode {
	return []Mode{ModeSIP, ModeLumpsum, ModeEMI, ModeFD, ModeSWP, ModeMF}
}

// ParseMode разбирает режим без учета регистра
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", invalid(FieldMode, s, "неизвестный режим калькулятора")
}

// CalculatorInput содержит параметры одного расчета.
// Ставка задается как номинальная годовая в процентах.
type CalculatorInput struct {
	Mode                Mode    `json:"mode"`
	Principal           float64 `json:"principal,omitempty"`
	MonthlyContribution float64 `json:"monthly_contribution,omitempty"`
	MonthlyWithdrawal   float64 `json:"monthly_withdrawal,omitempty"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
	TenureYears         int     `json:"tenure_years,omitempty"`
	TenureMonths        int     `json:"tenure_months,omitempty"`
}

// Months возвращает срок в месяцах
func (in CalculatorInput) Months() int {
	return in.TenureYears*12 + in.TenureMonths
}

// MonthlyRate возвращает месячную ставку r = annual/100/12
func (in CalculatorInput) MonthlyRate() float64 {
	return monthlyRate(in.AnnualRatePercent)
}

// periodMonths возвращает длину одного периода ряда: год, если срок задан
// целыми годами, иначе месяц.
func (in CalculatorInput) periodMonths() int {
	if in.TenureMonths == 0 {
		return 12
	}
	return 1
}

// Periods возвращает количество периодов ряда (без нулевого)
func (in CalculatorInput) Periods() int {
	return in.Months() / in.periodMonths()
}

// SeriesPoint представляет одну точку ряда для графика
type SeriesPoint struct {
	Period    int     `json:"period"`
	Invested  float64 `json:"invested"`
	Value     float64 `json:"value"`
	Withdrawn float64 `json:"withdrawn,omitempty"`
}

// GrowthMetrics представляет метрики роста инвестиций
type GrowthMetrics struct {
	ROIPercent              float64 `json:"roi_percent"`
	AnnualizedReturnPercent float64 `json:"annualized_return_percent"`
	CapitalGain             float64 `json:"capital_gain"`
	ProfitPercent           float64 `json:"profit_percent,omitempty"`
	TotalInvested           float64 `json:"total_invested"`
	FinalValue              float64 `json:"final_value"`
	Years                   float64 `json:"years"`
}

// ProjectionResult представляет результат расчета.
// Для всех режимов кроме SWP TotalValue = InvestedAmount + EstimatedReturns.
type ProjectionResult struct {
	Mode             Mode           `json:"mode"`
	InvestedAmount   float64        `json:"invested_amount"`
	EstimatedReturns float64        `json:"estimated_returns"`
	TotalValue       float64        `json:"total_value"`
	MonthlyEMI       float64        `json:"monthly_emi,omitempty"`
	TotalInterest    float64        `json:"total_interest,omitempty"`
	TotalWithdrawn   float64        `json:"total_withdrawn,omitempty"`
	Growth           *GrowthMetrics `json:"growth,omitempty"`
	Series           []SeriesPoint  `json:"series"`
}

// ScheduleEntry представляет один месяц графика погашения
type ScheduleEntry struct {
	Month               int     `json:"month"`
	Payment             float64 `json:"payment"`
	Interest            float64 `json:"interest"`
	PrincipalComponent  float64 `json:"principal_component"`
	RemainingPrincipal  float64 `json:"remaining_principal"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
}

// LoanSummary представляет сводку по кредиту
type LoanSummary struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Months            int     `json:"months"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	TotalPaid         float64 `json:"total_paid"`
	TotalInterest     float64 `json:"total_interest"`
}

// LoanSchedule представляет график аннуитетного кредита
type LoanSchedule struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// ComparisonResult представляет сравнение SIP и единовременного вложения
type ComparisonResult struct {
	TotalAmount    float64          `json:"total_amount"`
	SIP            ProjectionResult `json:"sip"`
	Lumpsum        ProjectionResult `json:"lumpsum"`
	Difference     float64          `json:"difference"`
	Better         Mode             `json:"better"`
	Recommendation string           `json:"recommendation"`
}
