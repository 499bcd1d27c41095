package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlit_tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlit_calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// CalculationDuration длительность расчета по режимам
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finlit_calculation_duration_seconds",
			Help:    "Длительность расчета проекции",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"mode"},
	)

	// CacheLookups обращения к кэшу проекций
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlit_cache_lookups_total",
			Help: "Обращения к кэшу проекций",
		},
		[]string{"result"},
	)

	// HTTPRequests запросы к HTTP API
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlit_http_requests_total",
			Help: "Запросы к HTTP API",
		},
		[]string{"route", "status"},
	)
)
