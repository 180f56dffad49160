package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SnapshotStatus string

const (
	SnapshotStatusOK          SnapshotStatus = "ok"
	SnapshotStatusEmpty       SnapshotStatus = "empty"
	SnapshotStatusPartial     SnapshotStatus = "partial"
	SnapshotStatusUnavailable SnapshotStatus = "unavailable"
)

type SummaryMetrics struct {
	TotalAmount       decimal.Decimal `json:"total_amount"`
	UniqueClientCount int             `json:"unique_client_count"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	PaymentCount      int             `json:"payment_count"`
	// HasAverage é falso quando não há pagamentos, a média é exibida como N/A
	HasAverage bool `json:"has_average"`
}

type MonthlyTotal struct {
	Month       time.Time       `json:"month"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type TopClientEntry struct {
	ClientID    int64           `json:"client_id"`
	ClientName  string          `json:"client_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ClientCumulativeSeries é uma célula da tabela de crescimento
type ClientCumulativeSeries struct {
	ClientID         int64           `json:"client_id"`
	ClientName       string          `json:"client_name"`
	Month            time.Time       `json:"month"`
	CumulativeAmount decimal.Decimal `json:"cumulative_amount"`
}

// GrowthTable é o pivô mês x cliente do valor acumulado.
// Values[i] corresponde a Months[i].
type GrowthTable struct {
	Months  []time.Time    `json:"months"`
	Clients []ClientGrowth `json:"clients"`
}

type ClientGrowth struct {
	ClientID   int64             `json:"client_id"`
	ClientName string            `json:"client_name"`
	Values     []decimal.Decimal `json:"values"`
}

func (g GrowthTable) IsEmpty() bool {
	return len(g.Months) == 0 || len(g.Clients) == 0
}

// Series achata o pivô em uma linha por (cliente, mês)
func (g GrowthTable) Series() []ClientCumulativeSeries {
	series := make([]ClientCumulativeSeries, 0, len(g.Months)*len(g.Clients))
	for _, client := range g.Clients {
		for i, month := range g.Months {
			series = append(series, ClientCumulativeSeries{
				ClientID:         client.ClientID,
				ClientName:       client.ClientName,
				Month:            month,
				CumulativeAmount: client.Values[i],
			})
		}
	}
	return series
}

// DashboardSnapshot é o resultado completo de uma execução do pipeline.
// Sempre existe, mesmo quando o banco está indisponível.
type DashboardSnapshot struct {
	Status         SnapshotStatus   `json:"status"`
	Errors         []string         `json:"errors"`
	Summary        SummaryMetrics   `json:"summary"`
	TopClients     []TopClientEntry `json:"top_clients"`
	MonthlyTotals  []MonthlyTotal   `json:"monthly_totals"`
	Growth         GrowthTable      `json:"growth"`
	LatestPayments []PaymentRecord  `json:"latest_payments"`
	RawRows        []RawPaymentRow  `json:"raw_rows"`
	RawRowCount    int              `json:"raw_row_count"`
	KeptRowCount   int              `json:"kept_row_count"`
	DroppedRows    int              `json:"dropped_rows"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// CanNarrate indica se há dados suficientes para pedir insights ao modelo
func (s DashboardSnapshot) CanNarrate() bool {
	return s.Status != SnapshotStatusUnavailable && len(s.MonthlyTotals) > 0 && len(s.TopClients) > 0
}
