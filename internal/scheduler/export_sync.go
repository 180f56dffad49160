// Package scheduler contém os jobs agendados da API
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

// ErrSyncRunning é devolvido quando já existe uma exportação em andamento
var ErrSyncRunning = errors.New("exportação agendada já está em execução")

// ExportSyncService grava periodicamente a tabela configurada em EXPORT_DIR
type ExportSyncService struct {
	scheduler *gocron.Scheduler
	exporter  exporting.Exporter
	config    config.ExportSync
	table     string
	now       func() time.Time

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.ExportResult
	lastError           string
}

func NewExportSyncService(exporter exporting.Exporter, cfg *config.Config) *ExportSyncService {
	log.L.WithFields(log.Fields{
		"cron_schedule": cfg.ExportSync.CronSchedule,
		"enabled":       cfg.ExportSync.Enabled,
		"table":         cfg.Export.Table,
	}).Info("Configuração do agendador de exportação carregada")

	return &ExportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		exporter:  exporter,
		config:    cfg.ExportSync,
		table:     cfg.Export.Table,
		now:       time.Now,
	}
}

func (s *ExportSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Exportação agendada desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSync(log.WithOperation(ctx, "export-sync")); err != nil && !errors.Is(err, ErrSyncRunning) {
			log.L.WithError(err).Error("Erro na exportação agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar exportação: %w", err)
	}

	s.scheduler.StartAsync()
	log.L.WithField("cron", s.config.CronSchedule).Info("Agendador de exportação iniciado")

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de exportação")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSync executa uma exportação completa e bloqueia até o fim
func (s *ExportSyncService) RunSync(ctx context.Context) error {
	if !s.acquire() {
		log.ForContext(ctx).Info("Exportação já em andamento, ignorando")
		return ErrSyncRunning
	}
	defer s.release()

	logger := log.ForContext(ctx).WithField("table", s.table)
	logger.Info("Iniciando exportação agendada")

	result, err := s.exporter.ExportToDir(ctx, s.table)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
		s.lastResult = result
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"path":          result.Path,
		"rows_exported": result.RowsExported,
	}).Info("Exportação agendada concluída")

	return nil
}

// TriggerManualSync dispara a exportação em background. Devolve false se já houver uma em andamento.
func (s *ExportSyncService) TriggerManualSync(ctx context.Context) bool {
	if s.IsRunning() {
		log.ForContext(ctx).Info("Exportação já em andamento, ignorando solicitação manual")
		return false
	}

	// O job sobrevive ao fim da requisição HTTP
	jobCtx := log.WithOperation(context.WithoutCancel(ctx), "export-manual")
	go func() {
		if err := s.RunSync(jobCtx); err != nil && !errors.Is(err, ErrSyncRunning) {
			log.ForContext(jobCtx).WithError(err).Error("Erro na exportação manual")
		}
	}()

	return true
}

func (s *ExportSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

func (s *ExportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"table":                  s.table,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastResult != nil {
		status["last_result"] = s.lastResult
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}
	return status
}

func (s *ExportSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

func (s *ExportSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}
