package utils

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const NotApplicable = "N/A"

// CurrencyFormat descreve a formatação monetária sem depender do locale da máquina
type CurrencyFormat struct {
	Symbol             string
	ThousandsSeparator string
	DecimalSeparator   string
	Precision          int32
}

// DefaultCurrencyFormat formata como R$ 1.234,56
var DefaultCurrencyFormat = CurrencyFormat{
	Symbol:             "R$",
	ThousandsSeparator: ".",
	DecimalSeparator:   ",",
	Precision:          2,
}

// FormatCurrency formata o valor com o símbolo, separadores e casas decimais informados
func FormatCurrency(value decimal.Decimal, format CurrencyFormat) string {
	number := FormatNumber(value, format)
	if format.Symbol == "" {
		return number
	}
	return format.Symbol + " " + number
}

// FormatNumber formata apenas o número, sem símbolo
func FormatNumber(value decimal.Decimal, format CurrencyFormat) string {
	precision := format.Precision
	if precision < 0 {
		precision = 0
	}

	rounded := value.Round(precision)

	// humanize usa "," e "." como marcadores e depois trocamos pelos separadores reais
	pattern := "#,###." + strings.Repeat("#", int(precision))
	formatted := humanize.FormatFloat(pattern, rounded.InexactFloat64())

	return strings.NewReplacer(
		",", format.ThousandsSeparator,
		".", format.DecimalSeparator,
	).Replace(formatted)
}

// FormatOptionalCurrency devolve N/A quando o valor não se aplica
func FormatOptionalCurrency(value decimal.Decimal, ok bool, format CurrencyFormat) string {
	if !ok {
		return NotApplicable
	}
	return FormatCurrency(value, format)
}
