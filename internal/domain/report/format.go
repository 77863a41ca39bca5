package report

import "github.com/shopspring/decimal"

// FormatAmount formatea con exactamente dos decimales. Valores no finitos -> "0.00".
func FormatAmount(v float64) string {
	if !finite(v) {
		return "0.00"
	}
	s := decimal.NewFromFloat(v).StringFixed(2)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// RoundAmount valor redondeado a dos decimales. Valores no finitos -> 0.
func RoundAmount(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
