package utils

import "math"

// Round2 округляет число до 2 знаков после запятой.
// Используется только при выводе результата, не внутри формул.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// ClampZero заменяет отрицательные значения нулем
func ClampZero(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}
