package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	usd := CurrencyFormat{Symbol: "$", ThousandsSeparator: ",", DecimalSeparator: ".", Precision: 2}

	tests := []struct {
		name     string
		value    string
		format   CurrencyFormat
		expected string
	}{
		{name: "Milhar brasileiro", value: "1234.56", format: DefaultCurrencyFormat, expected: "R$ 1.234,56"},
		{name: "Zero", value: "0", format: DefaultCurrencyFormat, expected: "R$ 0,00"},
		{name: "Milhões com arredondamento", value: "1234567.891", format: DefaultCurrencyFormat, expected: "R$ 1.234.567,89"},
		{name: "Meio centavo arredonda para cima", value: "10.005", format: DefaultCurrencyFormat, expected: "R$ 10,01"},
		{name: "Valor negativo", value: "-50.5", format: DefaultCurrencyFormat, expected: "R$ -50,50"},
		{name: "Formato americano", value: "1234.5", format: usd, expected: "$ 1,234.50"},
		{
			name:     "Sem casas decimais",
			value:    "1234.5",
			format:   CurrencyFormat{Symbol: "R$", ThousandsSeparator: ".", DecimalSeparator: ",", Precision: 0},
			expected: "R$ 1.235",
		},
		{
			name:     "Sem símbolo",
			value:    "999.9",
			format:   CurrencyFormat{ThousandsSeparator: ".", DecimalSeparator: ",", Precision: 2},
			expected: "999,90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(decimal.RequireFromString(tt.value), tt.format))
		})
	}
}

func TestFormatOptionalCurrency(t *testing.T) {
	assert.Equal(t, NotApplicable, FormatOptionalCurrency(decimal.Zero, false, DefaultCurrencyFormat))
	assert.Equal(t, "R$ 175,00", FormatOptionalCurrency(decimal.NewFromInt(175), true, DefaultCurrencyFormat))
}

func TestParseDate(t *testing.T) {
	expected := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "ISO", input: "2024-01-10"},
		{name: "ISO com espaços", input: "  2024-01-10 "},
		{name: "RFC3339", input: "2024-01-10T00:00:00Z"},
		{name: "Timestamp", input: "2024-01-10 00:00:00"},
		{name: "Brasileiro", input: "10/01/2024"},
		{name: "Firebird", input: "10.01.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, expected.Equal(TruncateToDate(got)))
		})
	}

	t.Run("Vazio", func(t *testing.T) {
		_, err := ParseDate("   ")
		assert.ErrorIs(t, err, ErrEmptyDate)
	})

	t.Run("Inválido", func(t *testing.T) {
		_, err := ParseDate("2024-13-45")
		assert.Error(t, err)
	})
}

func TestTruncateToDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	got := TruncateToDate(time.Date(2024, 3, 5, 22, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Zero", input: "0", expected: "0"},
		{name: "Arredonda para cima", input: "123.456", expected: "123.46"},
		{name: "Metade vai para longe do zero", input: "0.125", expected: "0.13"},
		{name: "Negativo", input: "-0.125", expected: "-0.13"},
		{name: "Carrega a casa", input: "100.099", expected: "100.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundMoney(decimal.RequireFromString(tt.input))
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "esperado %s, obtido %s", tt.expected, got)
		})
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 8)
	assert.Regexp(t, "^[A-Za-z0-9]+$", id)
}

func TestPrettyJson(t *testing.T) {
	out, err := PrettyJson(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)

	out, err = PrettyJson([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]", out)
}
