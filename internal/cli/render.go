package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/growth-dashboard-api/internal/presentation"
)

var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	barStyle    = lipgloss.NewStyle().Foreground(ColorBlue)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)

	noticeStyles = map[presentation.NoticeLevel]lipgloss.Style{
		presentation.NoticeInfo:    lipgloss.NewStyle().Foreground(ColorTextMuted),
		presentation.NoticeWarning: lipgloss.NewStyle().Foreground(ColorOrange),
		presentation.NoticeError:   lipgloss.NewStyle().Bold(true).Foreground(ColorRed),
	}
)

const (
	titleWidth = 60
	barWidth   = 30
)

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func RenderTitle(title, subtitle string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1)

	content := titleStyle.Render(title)
	if subtitle != "" {
		content += "\n" + mutedStyle.Render(subtitle)
	}
	return box.Render(content)
}

// RenderTable desenha a tabela com bordas arredondadas. A primeira coluna fica à esquerda e as demais à direita.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i := 0; i < numCols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(borderLine("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(renderRow(t.Headers, widths, headerStyle, false))
		b.WriteString(borderLine("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		b.WriteString(renderRow(row, widths, valueStyle, true))
	}

	b.WriteString(borderLine("╰", "┴", "╯", widths))
	return b.String()
}

func borderLine(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

func renderRow(cells []string, widths []int, style lipgloss.Style, alignNumbers bool) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("│"))

	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		pad := strings.Repeat(" ", w-lipgloss.Width(cell))
		if alignNumbers && i > 0 {
			b.WriteString(style.Render(" " + pad + cell + " "))
		} else {
			b.WriteString(style.Render(" " + cell + pad + " "))
		}
		b.WriteString(dimStyle.Render("│"))
	}

	return b.String() + "\n"
}

// RenderBarChart desenha uma barra horizontal por rótulo, proporcional ao maior valor positivo
func RenderBarChart(chart presentation.BarChart) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(chart.Title) + "\n")

	if chart.Empty {
		return b.String()
	}

	peak := decimal.Zero
	labelWidth := 0
	for i, v := range chart.Values {
		peak = decimal.Max(peak, v)
		labelWidth = max(labelWidth, lipgloss.Width(chart.Labels[i]))
	}

	for i, v := range chart.Values {
		label := chart.Labels[i]
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		b.WriteString(fmt.Sprintf("  %s%s %s %s\n",
			valueStyle.Render(label), pad,
			barStyle.Render(bar(v, peak, barWidth)),
			mutedStyle.Render(v.StringFixed(2)),
		))
	}

	return b.String()
}

func bar(value, peak decimal.Decimal, width int) string {
	if !peak.IsPositive() || !value.IsPositive() {
		return ""
	}
	n := int(value.Div(peak).Mul(decimal.NewFromInt(int64(width))).IntPart())
	return strings.Repeat("█", min(max(n, 1), width))
}

// RenderSparkline desenha a série com blocos unicode entre zero e o maior valor
func RenderSparkline(values []decimal.Decimal) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := decimal.Zero
	for _, v := range values {
		peak = decimal.Max(peak, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if peak.IsPositive() && v.IsPositive() {
			idx = int(v.Div(peak).Mul(decimal.NewFromInt(int64(len(blocks) - 1))).Round(0).IntPart())
		}
		b.WriteRune(blocks[min(idx, len(blocks)-1)])
	}

	return b.String()
}

// RenderLineChart mostra uma sparkline por cliente com o último valor acumulado
func RenderLineChart(chart presentation.LineChart) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(chart.Title) + "\n")

	if chart.Empty {
		return b.String()
	}

	nameWidth := 0
	for _, s := range chart.Series {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}

	for _, s := range chart.Series {
		last := decimal.Zero
		if len(s.Values) > 0 {
			last = s.Values[len(s.Values)-1]
		}
		pad := strings.Repeat(" ", nameWidth-lipgloss.Width(s.Name))
		b.WriteString(fmt.Sprintf("  %s%s %s %s\n",
			valueStyle.Render(s.Name), pad,
			barStyle.Render(RenderSparkline(s.Values)),
			mutedStyle.Render(last.StringFixed(2)),
		))
	}

	return b.String()
}

func RenderNotices(notices []presentation.Notice) string {
	var b strings.Builder
	for _, n := range notices {
		style, ok := noticeStyles[n.Level]
		if !ok {
			style = mutedStyle
		}

		prefix := "•"
		if n.Widget != "" {
			prefix = "• " + n.Widget + ":"
		}
		b.WriteString("  " + style.Render(prefix+" "+n.Message) + "\n")
	}
	return b.String()
}

// RenderDashboard monta o relatório completo do painel para o terminal
func RenderDashboard(view presentation.DashboardView) string {
	var b strings.Builder

	b.WriteString(RenderTitle(view.Title, view.Subtitle) + "\n\n")

	if len(view.Notices) > 0 {
		b.WriteString(RenderNotices(view.Notices) + "\n")
	}

	metrics := make([][]string, 0, len(view.Metrics))
	for _, m := range view.Metrics {
		metrics = append(metrics, []string{m.Label, m.Value})
	}
	b.WriteString(RenderTable(Table{Title: "Métricas", Rows: metrics}) + "\n")

	b.WriteString(RenderBarChart(view.MonthlyTotals) + "\n")
	b.WriteString(RenderLineChart(view.CumulativeGrowth) + "\n")
	b.WriteString(RenderBarChart(view.TopClients) + "\n")

	for _, tv := range []presentation.TableView{view.LatestPayments, view.RawData} {
		if tv.Empty {
			b.WriteString("  " + headerStyle.Render(tv.Title) + "\n\n")
			continue
		}
		b.WriteString(RenderTable(Table{Title: tv.Title, Headers: tv.Columns, Rows: tv.Rows}) + "\n")
	}

	return b.String()
}
