package utils

import (
	"fmt"
	"math"
)

// RoundAmount rounds to the given number of decimal places. Omani Rial is
// quoted with 3 subunit digits (baisa); the tour deployment displays 2.
func RoundAmount(amount float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(amount*p) / p
}

// FormatAmount keeps consistent decimal formatting for currency fields.
func FormatAmount(amount float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, RoundAmount(amount, decimals))
}
