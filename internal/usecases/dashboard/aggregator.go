package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

const DefaultTopClientsLimit = 10

// Summarize calcula receita total, clientes únicos e valor médio por pagamento
func Summarize(records []domain.PaymentRecord) domain.SummaryMetrics {
	total := decimal.Zero
	clients := make(map[int64]struct{})

	for _, record := range records {
		total = total.Add(record.Amount)
		clients[record.ClientID] = struct{}{}
	}

	metrics := domain.SummaryMetrics{
		TotalAmount:       total,
		UniqueClientCount: len(clients),
		AverageAmount:     decimal.Zero,
		PaymentCount:      len(records),
	}

	if len(records) > 0 {
		metrics.AverageAmount = total.Div(decimal.NewFromInt(int64(len(records))))
		metrics.HasAverage = true
	}

	return metrics
}

// clientGroup acumula os pagamentos de um cliente na ordem em que apareceram
type clientGroup struct {
	id      int64
	name    string
	total   decimal.Decimal
	records []domain.PaymentRecord
}

func groupByClient(records []domain.PaymentRecord) []*clientGroup {
	index := make(map[int64]*clientGroup)
	groups := make([]*clientGroup, 0)

	for _, record := range records {
		group, ok := index[record.ClientID]
		if !ok {
			group = &clientGroup{id: record.ClientID, name: record.ClientName, total: decimal.Zero}
			index[record.ClientID] = group
			groups = append(groups, group)
		}
		group.total = group.total.Add(record.Amount)
		group.records = append(group.records, record)
	}

	return groups
}

// TopClients soma por cliente e devolve os maiores em ordem decrescente.
// Empates mantêm a ordem em que o cliente apareceu pela primeira vez.
func TopClients(records []domain.PaymentRecord, limit int) []domain.TopClientEntry {
	if limit <= 0 {
		limit = DefaultTopClientsLimit
	}

	groups := groupByClient(records)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})

	if len(groups) > limit {
		groups = groups[:limit]
	}

	top := make([]domain.TopClientEntry, 0, len(groups))
	for _, group := range groups {
		top = append(top, domain.TopClientEntry{
			ClientID:    group.id,
			ClientName:  group.name,
			TotalAmount: group.total,
		})
	}

	return top
}

// MonthlyTotals soma por mês em ordem crescente; meses sem pagamento não aparecem
func MonthlyTotals(records []domain.PaymentRecord) []domain.MonthlyTotal {
	totals := make(map[time.Time]decimal.Decimal)
	for _, record := range records {
		month := domain.MonthOf(record.PaymentDate)
		current, ok := totals[month]
		if !ok {
			current = decimal.Zero
		}
		totals[month] = current.Add(record.Amount)
	}

	months := sortedMonths(totals)
	result := make([]domain.MonthlyTotal, 0, len(months))
	for _, month := range months {
		result = append(result, domain.MonthlyTotal{Month: month, TotalAmount: totals[month]})
	}

	return result
}

// CumulativeGrowth monta o pivô mês x cliente do valor acumulado.
// O valor de um mês é o maior acumulado atingido nele; meses sem pagamento
// repetem o último valor e meses anteriores ao primeiro pagamento ficam em zero.
// Colunas saem ordenadas por nome e, em caso de nomes iguais, por id.
func CumulativeGrowth(records []domain.PaymentRecord) domain.GrowthTable {
	groups := groupByClient(records)
	if len(groups) == 0 {
		return domain.GrowthTable{Months: []time.Time{}, Clients: []domain.ClientGrowth{}}
	}

	allMonths := make(map[time.Time]struct{})
	peaksByClient := make(map[int64]map[time.Time]decimal.Decimal, len(groups))

	for _, group := range groups {
		payments := make([]domain.PaymentRecord, len(group.records))
		copy(payments, group.records)
		sort.SliceStable(payments, func(a, b int) bool {
			return payments[a].PaymentDate.Before(payments[b].PaymentDate)
		})

		running := decimal.Zero
		peaks := make(map[time.Time]decimal.Decimal)
		for _, payment := range payments {
			running = running.Add(payment.Amount)
			month := domain.MonthOf(payment.PaymentDate)
			if peak, ok := peaks[month]; !ok || running.GreaterThan(peak) {
				peaks[month] = running
			}
			allMonths[month] = struct{}{}
		}
		peaksByClient[group.id] = peaks
	}

	months := sortedMonths(allMonths)

	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].name != groups[b].name {
			return groups[a].name < groups[b].name
		}
		return groups[a].id < groups[b].id
	})

	clients := make([]domain.ClientGrowth, 0, len(groups))
	for _, group := range groups {
		peaks := peaksByClient[group.id]

		values := make([]decimal.Decimal, len(months))
		last := decimal.Zero
		for m, month := range months {
			if peak, ok := peaks[month]; ok {
				last = peak
			}
			values[m] = last
		}

		clients = append(clients, domain.ClientGrowth{
			ClientID:   group.id,
			ClientName: group.name,
			Values:     values,
		})
	}

	return domain.GrowthTable{Months: months, Clients: clients}
}

// LatestPayments devolve os primeiros n pagamentos na ordem da consulta (mais recentes primeiro)
func LatestPayments(records []domain.PaymentRecord, n int) []domain.PaymentRecord {
	if n < 0 || n > len(records) {
		n = len(records)
	}
	latest := make([]domain.PaymentRecord, n)
	copy(latest, records[:n])
	return latest
}

func sortedMonths[V any](set map[time.Time]V) []time.Time {
	months := make([]time.Time, 0, len(set))
	for month := range set {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})
	return months
}
