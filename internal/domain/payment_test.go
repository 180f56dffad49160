package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawPaymentRow_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		row      RawPaymentRow
		expected string
	}{
		{
			name:     "Bytes do driver viram texto",
			row:      RawPaymentRow{ClientID: 1, ClientName: "A", PaymentID: 2, PaymentDate: []byte("2024-01-10"), Amount: []byte("100.50")},
			expected: `{"cliente_id":1,"cliente_nome":"A","pagamento_id":2,"data_pagamento":"2024-01-10","valor_pago":"100.50"}`,
		},
		{
			name:     "Tipos nativos ficam como estão",
			row:      RawPaymentRow{ClientID: 1, ClientName: "A", PaymentID: 2, PaymentDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Amount: 100.5},
			expected: `{"cliente_id":1,"cliente_nome":"A","pagamento_id":2,"data_pagamento":"2024-01-10T00:00:00Z","valor_pago":100.5}`,
		},
		{
			name:     "Valores nulos",
			row:      RawPaymentRow{ClientID: 1, PaymentID: 2},
			expected: `{"cliente_id":1,"cliente_nome":"","pagamento_id":2,"data_pagamento":null,"valor_pago":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.row)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out))
		})
	}

	t.Run("Dentro de uma lista", func(t *testing.T) {
		out, err := json.Marshal([]RawPaymentRow{{Amount: []byte("7.00")}})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"valor_pago":"7.00"`)
	})
}
