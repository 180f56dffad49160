package insighting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

const promptHeader = `Analise os dados de pagamentos de uma empresa fornecidos abaixo.
Forneça insights de negócios em formato de bullet points fáceis de entender.
Identifique tendências no crescimento mensal total e nos pagamentos por cliente.
Sugira possíveis áreas para focar para aumentar a receita ou reter clientes.

Dados para Análise:`

const promptFooter = `Com base nesses dados, quais são os principais insights e recomendações de negócios?`

type promptSection struct {
	title string
	body  string
}

// BuildPrompt monta o prompt em português com as métricas formatadas e as tabelas em markdown
func BuildPrompt(snapshot domain.DashboardSnapshot, format utils.CurrencyFormat) string {
	summary := snapshot.Summary

	sections := []promptSection{
		{title: "Receita Total Geral", body: utils.FormatCurrency(summary.TotalAmount, format)},
		{title: "Número de Clientes Únicos com Pagamento", body: strconv.Itoa(summary.UniqueClientCount)},
		{title: "Valor Médio por Pagamento", body: utils.FormatOptionalCurrency(summary.AverageAmount, summary.HasAverage, format)},
		{title: "Total Pago por Mês (Dados)", body: monthlyTable(snapshot.MonthlyTotals)},
		{title: fmt.Sprintf("Top %d Clientes por Total Pago (Dados)", len(snapshot.TopClients)), body: topClientsTable(snapshot.TopClients)},
	}

	var sb strings.Builder
	sb.WriteString(promptHeader)
	for _, section := range sections {
		sb.WriteString("\n\n## ")
		sb.WriteString(section.title)
		sb.WriteString(":\n")
		sb.WriteString(section.body)
	}
	sb.WriteString("\n\n")
	sb.WriteString(promptFooter)
	sb.WriteString("\n")

	return sb.String()
}

func monthlyTable(totals []domain.MonthlyTotal) string {
	rows := make([][]string, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, []string{total.Month.Format("2006-01"), total.TotalAmount.StringFixed(2)})
	}
	return markdownTable([]string{"Mês", "Valor Pago"}, rows)
}

func topClientsTable(top []domain.TopClientEntry) string {
	rows := make([][]string, 0, len(top))
	for _, entry := range top {
		rows = append(rows, []string{entry.ClientName, entry.TotalAmount.StringFixed(2)})
	}
	return markdownTable([]string{"Cliente", "Total Pago"}, rows)
}

func markdownTable(header []string, rows [][]string) string {
	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(cell, "|", `\|`))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	separator := make([]string, len(header))
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(separator)
	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
