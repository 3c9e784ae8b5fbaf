package bot

import (
	"albahr-backend/internal/config"
	"albahr-backend/internal/utils"
)

// Quote computes the party total for a trip type in OMR.
//
// Adults pay the per-type base price (unknown types fall back to the
// variant default). Children pay the variant's child factor of the base
// price; infants ride free and never reach this function. Once the party
// reaches the variant's group threshold the flat group discount applies
// to the whole amount. The result is rounded to the variant's displayed
// currency precision.
func Quote(v config.Variant, tripName string, adults, children int) float64 {
	base := v.BasePriceFor(tripName)
	total := float64(adults)*base + float64(children)*base*v.ChildPriceFactor
	if adults+children >= v.GroupDiscountMin {
		total *= 1 - v.GroupDiscountRate
	}
	return utils.RoundAmount(total, v.CurrencyDecimals)
}

// QuoteDisplay formats a quote the way confirmations and sheet rows show it.
func QuoteDisplay(v config.Variant, tripName string, adults, children int) string {
	return utils.FormatAmount(Quote(v, tripName, adults, children), v.CurrencyDecimals)
}
