package utils

import "github.com/shopspring/decimal"

const MoneyPlaces = 2

// RoundMoney arredonda para centavos, com metade para longe do zero
func RoundMoney(value decimal.Decimal) decimal.Decimal {
	return value.Round(MoneyPlaces)
}
