package dashboard

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

var (
	errUnparseableDate   = errors.New("data de pagamento inválida")
	errUnparseableAmount = errors.New("valor pago inválido")
)

// Normalize converte as linhas brutas em pagamentos tipados.
// Linhas com data ou valor inválidos são descartadas em silêncio; a ordem é mantida.
func Normalize(rows []domain.RawPaymentRow) (records []domain.PaymentRecord, dropped int) {
	records = make([]domain.PaymentRecord, 0, len(rows))

	for _, row := range rows {
		date, err := coerceDate(row.PaymentDate)
		if err != nil {
			dropped++
			continue
		}

		amount, err := coerceAmount(row.Amount)
		if err != nil {
			dropped++
			continue
		}

		records = append(records, domain.PaymentRecord{
			ClientID:    row.ClientID,
			ClientName:  row.ClientName,
			PaymentID:   row.PaymentID,
			PaymentDate: date,
			Amount:      amount,
		})
	}

	return records, dropped
}

func coerceDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, errUnparseableDate
		}
		return utils.TruncateToDate(v), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, errUnparseableDate
		}
		return coerceDate(*v)
	case string:
		return parseDateText(v)
	case []byte:
		return parseDateText(string(v))
	default:
		return time.Time{}, fmt.Errorf("%w: tipo %T", errUnparseableDate, value)
	}
}

func parseDateText(text string) (time.Time, error) {
	date, err := utils.ParseDate(text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errUnparseableDate, err)
	}
	return utils.TruncateToDate(date), nil
}

func coerceAmount(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case decimal.NullDecimal:
		if !v.Valid {
			return decimal.Zero, errUnparseableAmount
		}
		return v.Decimal, nil
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case string:
		return parseAmountText(v)
	case []byte:
		return parseAmountText(string(v))
	default:
		return decimal.Zero, fmt.Errorf("%w: tipo %T", errUnparseableAmount, value)
	}
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errUnparseableAmount
	}
	return decimal.NewFromFloat(f), nil
}

func parseAmountText(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, errUnparseableAmount
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", errUnparseableAmount, err)
	}
	return amount, nil
}
