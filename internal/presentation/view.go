package presentation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

const (
	Title    = "Dashboard de Crescimento de Negócios"
	Subtitle = "Explore métricas, gráficos e dados de pagamentos e crescimento."

	NoticeInsufficientData = "Dados insuficientes para gerar o gráfico."
	NoticeNoLatestPayments = "Nenhum dado de último pagamento disponível."
	NoticeNoRawData        = "Nenhum dado bruto carregado."
	NoticeUnavailable      = "Erro ao conectar ou operar no banco de dados."

	monthLabelLayout = "2006-01"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Widget  string      `json:"widget,omitempty"`
	Message string      `json:"message"`
}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type BarChart struct {
	Title  string            `json:"title"`
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
	Empty  bool              `json:"empty"`
}

type LineSeries struct {
	Name   string            `json:"name"`
	Values []decimal.Decimal `json:"values"`
}

type LineChart struct {
	Title  string       `json:"title"`
	Labels []string     `json:"labels"`
	Series []LineSeries `json:"series"`
	Empty  bool         `json:"empty"`
}

type TableView struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Empty   bool       `json:"empty"`
}

// DashboardView é o conjunto de widgets pronto para a API e para o relatório no terminal
type DashboardView struct {
	Title            string    `json:"title"`
	Subtitle         string    `json:"subtitle"`
	Status           string    `json:"status"`
	Metrics          []Metric  `json:"metrics"`
	MonthlyTotals    BarChart  `json:"monthly_totals"`
	CumulativeGrowth LineChart `json:"cumulative_growth"`
	TopClients       BarChart  `json:"top_clients"`
	LatestPayments   TableView `json:"latest_payments"`
	RawData          TableView `json:"raw_data"`
	Notices          []Notice  `json:"notices"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// BuildDashboardView nunca falha: um snapshot degradado gera widgets vazios com avisos
func BuildDashboardView(snapshot domain.DashboardSnapshot, format utils.CurrencyFormat) DashboardView {
	view := DashboardView{
		Title:       Title,
		Subtitle:    Subtitle,
		Status:      string(snapshot.Status),
		Notices:     []Notice{},
		GeneratedAt: snapshot.GeneratedAt,
	}

	if snapshot.Status == domain.SnapshotStatusUnavailable {
		view.Notices = append(view.Notices, Notice{Level: NoticeError, Message: NoticeUnavailable})
	}
	for _, msg := range snapshot.Errors {
		view.Notices = append(view.Notices, Notice{Level: NoticeError, Message: msg})
	}

	view.Metrics = metrics(snapshot.Summary, format)

	view.MonthlyTotals = monthlyChart(snapshot.MonthlyTotals)
	if view.MonthlyTotals.Empty {
		view.notice(view.MonthlyTotals.Title, NoticeInsufficientData)
	}

	view.CumulativeGrowth = growthChart(snapshot.Growth)
	if view.CumulativeGrowth.Empty {
		view.notice(view.CumulativeGrowth.Title, NoticeInsufficientData)
	}

	view.TopClients = topClientsChart(snapshot.TopClients)
	if view.TopClients.Empty {
		view.notice(view.TopClients.Title, NoticeInsufficientData)
	}

	view.LatestPayments = latestPaymentsTable(snapshot.LatestPayments, format)
	if view.LatestPayments.Empty {
		view.notice(view.LatestPayments.Title, NoticeNoLatestPayments)
	}

	view.RawData = rawTable(snapshot.RawRows)
	if view.RawData.Empty {
		view.notice(view.RawData.Title, NoticeNoRawData)
	}

	return view
}

func (v *DashboardView) notice(widget, message string) {
	v.Notices = append(v.Notices, Notice{Level: NoticeInfo, Widget: widget, Message: message})
}

func metrics(summary domain.SummaryMetrics, format utils.CurrencyFormat) []Metric {
	return []Metric{
		{Label: "Receita Total", Value: utils.FormatCurrency(summary.TotalAmount, format)},
		{Label: "Clientes Únicos com Pagamento", Value: strconv.Itoa(summary.UniqueClientCount)},
		{Label: "Valor Médio por Pagamento", Value: utils.FormatOptionalCurrency(summary.AverageAmount, summary.HasAverage, format)},
	}
}

func monthlyChart(totals []domain.MonthlyTotal) BarChart {
	chart := BarChart{
		Title:  "Total Pago por Mês",
		Labels: make([]string, 0, len(totals)),
		Values: make([]decimal.Decimal, 0, len(totals)),
	}
	for _, total := range totals {
		chart.Labels = append(chart.Labels, total.Month.Format(monthLabelLayout))
		chart.Values = append(chart.Values, total.TotalAmount)
	}
	chart.Empty = len(totals) == 0
	return chart
}

func growthChart(growth domain.GrowthTable) LineChart {
	chart := LineChart{
		Title:  "Crescimento do Pagamento Acumulado por Cliente",
		Labels: make([]string, 0, len(growth.Months)),
		Series: make([]LineSeries, 0, len(growth.Clients)),
	}
	for _, month := range growth.Months {
		chart.Labels = append(chart.Labels, month.Format(monthLabelLayout))
	}
	for _, client := range growth.Clients {
		chart.Series = append(chart.Series, LineSeries{Name: client.ClientName, Values: client.Values})
	}
	chart.Empty = growth.IsEmpty()
	return chart
}

func topClientsChart(top []domain.TopClientEntry) BarChart {
	chart := BarChart{
		Title:  fmt.Sprintf("Top %d Clientes por Total Pago", len(top)),
		Labels: make([]string, 0, len(top)),
		Values: make([]decimal.Decimal, 0, len(top)),
	}
	if len(top) == 0 {
		chart.Title = "Top Clientes por Total Pago"
	}
	for _, entry := range top {
		chart.Labels = append(chart.Labels, entry.ClientName)
		chart.Values = append(chart.Values, entry.TotalAmount)
	}
	chart.Empty = len(top) == 0
	return chart
}

func latestPaymentsTable(payments []domain.PaymentRecord, format utils.CurrencyFormat) TableView {
	table := TableView{
		Title:   fmt.Sprintf("Últimos %d Pagamentos", len(payments)),
		Columns: []string{"Cliente", "Data do Pagamento", "Valor Pago"},
		Rows:    make([][]string, 0, len(payments)),
	}
	if len(payments) == 0 {
		table.Title = "Últimos Pagamentos"
	}
	for _, payment := range payments {
		table.Rows = append(table.Rows, []string{
			payment.ClientName,
			payment.PaymentDate.Format("02/01/2006"),
			utils.FormatCurrency(payment.Amount, format),
		})
	}
	table.Empty = len(payments) == 0
	return table
}

func rawTable(rows []domain.RawPaymentRow) TableView {
	table := TableView{
		Title:   "Dados Brutos de Pagamentos",
		Columns: []string{"cliente_id", "cliente_nome", "pagamento_id", "data_pagamento", "valor_pago"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(row.ClientID, 10),
			row.ClientName,
			strconv.FormatInt(row.PaymentID, 10),
			rawText(row.PaymentDate),
			rawText(row.Amount),
		})
	}
	table.Empty = len(rows) == 0
	return table
}

func rawText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.DateOnly)
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
