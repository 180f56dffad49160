package dashboard

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

func TestNormalize(t *testing.T) {
	withTime := time.Date(2024, 5, 17, 22, 30, 0, 0, time.FixedZone("BRT", -3*3600))

	tests := []struct {
		name    string
		date    any
		amount  any
		kept    bool
		expDate time.Time
		expAmt  string
	}{
		{name: "time.Time com hora", date: withTime, amount: decimal.RequireFromString("10.50"), kept: true, expDate: day(2024, 5, 17), expAmt: "10.50"},
		{name: "Texto ISO", date: "2024-01-10", amount: "100", kept: true, expDate: day(2024, 1, 10), expAmt: "100"},
		{name: "Texto com hora", date: "2024-01-10 13:45:00", amount: 12.5, kept: true, expDate: day(2024, 1, 10), expAmt: "12.5"},
		{name: "Bytes do driver", date: []byte("2024-02-29"), amount: []byte("7.25"), kept: true, expDate: day(2024, 2, 29), expAmt: "7.25"},
		{name: "Formato brasileiro", date: "05/03/2024", amount: int64(3), kept: true, expDate: day(2024, 3, 5), expAmt: "3"},
		{name: "Valor negativo é mantido", date: "2024-01-01", amount: "-20", kept: true, expDate: day(2024, 1, 1), expAmt: "-20"},
		{name: "Decimal nulo", date: "2024-01-01", amount: decimal.NullDecimal{}, kept: false},
		{name: "Data nula", date: nil, amount: "10", kept: false},
		{name: "Data zero", date: time.Time{}, amount: "10", kept: false},
		{name: "Data inválida", date: "ontem", amount: "10", kept: false},
		{name: "Valor vazio", date: "2024-01-01", amount: "  ", kept: false},
		{name: "Valor não numérico", date: "2024-01-01", amount: "dez reais", kept: false},
		{name: "Valor nulo", date: "2024-01-01", amount: nil, kept: false},
		{name: "NaN", date: "2024-01-01", amount: math.NaN(), kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []domain.RawPaymentRow{{ClientID: 1, ClientName: "A", PaymentID: 9, PaymentDate: tt.date, Amount: tt.amount}}

			records, dropped := Normalize(rows)

			if !tt.kept {
				assert.Empty(t, records)
				assert.Equal(t, 1, dropped)
				return
			}

			require.Len(t, records, 1)
			assert.Equal(t, 0, dropped)
			assert.Equal(t, tt.expDate, records[0].PaymentDate)
			assertDecimal(t, tt.expAmt, records[0].Amount)
			assert.Equal(t, int64(9), records[0].PaymentID)
		})
	}
}

func TestNormalize_MantemOrdem(t *testing.T) {
	rows := []domain.RawPaymentRow{
		{ClientID: 1, PaymentID: 3, PaymentDate: "2024-03-01", Amount: "1"},
		{ClientID: 1, PaymentID: 2, PaymentDate: "invalida", Amount: "1"},
		{ClientID: 2, PaymentID: 1, PaymentDate: "2024-01-01", Amount: "1"},
	}

	records, dropped := Normalize(rows)

	require.Len(t, records, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, int64(3), records[0].PaymentID)
	assert.Equal(t, int64(1), records[1].PaymentID)
}
