package models

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every monetary column.
const MoneyPlaces = 2

func init() {
	// Clients read balances and prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney rounds d half away from zero to the stored money scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Cost returns the price of holding a spot for the given number of hours.
func Cost(pricePerHour decimal.Decimal, hours float64) decimal.Decimal {
	return RoundMoney(pricePerHour.Mul(decimal.NewFromFloat(hours)))
}
