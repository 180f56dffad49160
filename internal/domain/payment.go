package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawPaymentRow é a linha como veio do driver, antes de qualquer conversão.
// Data e valor variam de tipo conforme o banco (time.Time, string, []byte, float64...).
type RawPaymentRow struct {
	ClientID    int64  `json:"cliente_id"`
	ClientName  string `json:"cliente_nome"`
	PaymentID   int64  `json:"pagamento_id"`
	PaymentDate any    `json:"data_pagamento"`
	Amount      any    `json:"valor_pago"`
}

// MarshalJSON escreve []byte vindo do driver (numeric no lib/pq, por exemplo) como texto e não como base64
func (r RawPaymentRow) MarshalJSON() ([]byte, error) {
	type rawRow RawPaymentRow

	out := rawRow(r)
	out.PaymentDate = driverText(r.PaymentDate)
	out.Amount = driverText(r.Amount)

	return json.Marshal(out)
}

func driverText(value any) any {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}

// PaymentRecord é um pagamento já normalizado
type PaymentRecord struct {
	ClientID    int64           `json:"client_id"`
	ClientName  string          `json:"client_name"`
	PaymentID   int64           `json:"payment_id"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthOf devolve o primeiro dia do mês da data, em UTC
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
