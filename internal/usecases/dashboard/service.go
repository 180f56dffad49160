package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

const (
	DefaultLatestPaymentsLimit = 10
	DefaultRawPreviewLimit     = 100
)

type Options struct {
	TopClientsLimit     int
	LatestPaymentsLimit int
	RawPreviewLimit     int
}

// derivations permite trocar as agregações nos testes
type derivations struct {
	summarize        func([]domain.PaymentRecord) domain.SummaryMetrics
	topClients       func([]domain.PaymentRecord, int) []domain.TopClientEntry
	monthlyTotals    func([]domain.PaymentRecord) []domain.MonthlyTotal
	cumulativeGrowth func([]domain.PaymentRecord) domain.GrowthTable
}

var defaultDerivations = derivations{
	summarize:        Summarize,
	topClients:       TopClients,
	monthlyTotals:    MonthlyTotals,
	cumulativeGrowth: CumulativeGrowth,
}

type Service struct {
	paymentRepo repository.PaymentRepository
	opts        Options
	derive      derivations
	now         func() time.Time
}

func NewService(paymentRepo repository.PaymentRepository, cfg *config.Config) *Service {
	return NewServiceWithOptions(paymentRepo, Options{
		TopClientsLimit:     cfg.Dashboard.TopClientsLimit,
		LatestPaymentsLimit: cfg.Dashboard.LatestPaymentsLimit,
		RawPreviewLimit:     cfg.Dashboard.RawPreviewLimit,
	})
}

func NewServiceWithOptions(paymentRepo repository.PaymentRepository, opts Options) *Service {
	if opts.TopClientsLimit <= 0 {
		opts.TopClientsLimit = DefaultTopClientsLimit
	}
	if opts.LatestPaymentsLimit <= 0 {
		opts.LatestPaymentsLimit = DefaultLatestPaymentsLimit
	}
	if opts.RawPreviewLimit <= 0 {
		opts.RawPreviewLimit = DefaultRawPreviewLimit
	}

	return &Service{
		paymentRepo: paymentRepo,
		opts:        opts,
		derive:      defaultDerivations,
		now:         time.Now,
	}
}

// BuildSnapshot nunca falha: problemas de conexão e de cálculo ficam registrados no Status e em Errors
func (s *Service) BuildSnapshot(ctx context.Context) domain.DashboardSnapshot {
	logger := log.ForContext(ctx)

	snapshot := emptySnapshot(s.now().UTC())

	if s.paymentRepo == nil {
		snapshot.Status = domain.SnapshotStatusUnavailable
		snapshot.Errors = append(snapshot.Errors, "conexão com o banco de dados não configurada")
		logger.Warn("dashboard: repositório de pagamentos indisponível")
		return snapshot
	}

	rows, err := s.paymentRepo.ListPaymentRows(ctx)
	if err != nil {
		snapshot.Status = domain.SnapshotStatusUnavailable
		snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("falha ao consultar pagamentos: %v", err))
		logger.WithError(err).Error("dashboard: erro ao carregar pagamentos")
		return snapshot
	}

	snapshot.RawRowCount = len(rows)
	snapshot.RawRows = head(rows, s.opts.RawPreviewLimit)

	records, dropped := Normalize(rows)
	snapshot.KeptRowCount = len(records)
	snapshot.DroppedRows = dropped

	if dropped > 0 {
		logger.WithFields(log.Fields{"dropped_rows": dropped}).Debugf("dashboard: %d linhas descartadas na normalização", dropped)
	}

	snapshot.LatestPayments = LatestPayments(records, s.opts.LatestPaymentsLimit)

	if len(records) == 0 {
		snapshot.Status = domain.SnapshotStatusEmpty
		logger.Info("dashboard: nenhum pagamento válido encontrado")
		return snapshot
	}

	s.guard(ctx, &snapshot, "métricas", func() {
		snapshot.Summary = s.derive.summarize(records)
	})
	s.guard(ctx, &snapshot, "top clientes", func() {
		snapshot.TopClients = s.derive.topClients(records, s.opts.TopClientsLimit)
	})
	s.guard(ctx, &snapshot, "totais mensais", func() {
		snapshot.MonthlyTotals = s.derive.monthlyTotals(records)
	})
	s.guard(ctx, &snapshot, "crescimento acumulado", func() {
		snapshot.Growth = s.derive.cumulativeGrowth(records)
	})

	logger.WithFields(log.Fields{
		"status":       snapshot.Status,
		"raw_rows":     snapshot.RawRowCount,
		"kept_rows":    snapshot.KeptRowCount,
		"dropped_rows": snapshot.DroppedRows,
	}).Info("dashboard: snapshot gerado")

	return snapshot
}

// guard isola uma agregação: se ela entrar em pânico, só o seu resultado fica vazio
func (s *Service) guard(ctx context.Context, snapshot *domain.DashboardSnapshot, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			snapshot.Status = domain.SnapshotStatusPartial
			snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("falha ao calcular %s: %v", name, r))
			log.ForContext(ctx).WithField("error", r).Errorf("dashboard: pânico ao calcular %s", name)
		}
	}()

	fn()
}

func emptySnapshot(now time.Time) domain.DashboardSnapshot {
	return domain.DashboardSnapshot{
		Status:         domain.SnapshotStatusOK,
		Errors:         []string{},
		Summary:        Summarize(nil),
		TopClients:     []domain.TopClientEntry{},
		MonthlyTotals:  []domain.MonthlyTotal{},
		Growth:         CumulativeGrowth(nil),
		LatestPayments: []domain.PaymentRecord{},
		RawRows:        []domain.RawPaymentRow{},
		GeneratedAt:    now,
	}
}

func head[T any](items []T, n int) []T {
	if n < 0 || n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
