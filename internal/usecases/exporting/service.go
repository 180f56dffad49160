package exporting

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

type Service struct {
	tableRepo repository.TableRepository
	writer    *spreadsheet.Writer
	cfg       config.Export
	now       func() time.Time
}

func NewService(tableRepo repository.TableRepository, cfg *config.Config) *Service {
	return &Service{
		tableRepo: tableRepo,
		writer:    spreadsheet.NewWriter(cfg.Export.SheetName),
		cfg:       cfg.Export,
		now:       time.Now,
	}
}

func (s *Service) ExportTable(ctx context.Context, table, path string) (*domain.ExportResult, error) {
	if path == "" {
		path = s.cfg.OutputPath
	}

	return s.export(ctx, "", table, path, func(data domain.Table) error {
		return s.writer.WriteFile(data, path)
	})
}

func (s *Service) ExportToDir(ctx context.Context, table string) (*domain.ExportResult, error) {
	table = s.tableOrDefault(table)

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da exportação: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.xlsx", table, s.now().Format("20060102_150405"), id)
	path := filepath.Join(s.cfg.Dir, name)

	return s.export(ctx, id, table, path, func(data domain.Table) error {
		return s.writer.WriteFile(data, path)
	})
}

func (s *Service) StreamTable(ctx context.Context, table string, out io.Writer) (*domain.ExportResult, error) {
	return s.export(ctx, "", table, "", func(data domain.Table) error {
		return s.writer.Write(data, out)
	})
}

// export lê, limpa e grava a tabela. Um id vazio é gerado aqui.
func (s *Service) export(ctx context.Context, id, table, path string, write func(domain.Table) error) (*domain.ExportResult, error) {
	table = s.tableOrDefault(table)
	logger := log.ForContext(ctx).WithFields(log.Fields{"table": table, "path": path})

	if id == "" {
		var err error
		if id, err = utils.GenerateID(); err != nil {
			return nil, fmt.Errorf("erro ao gerar id da exportação: %w", err)
		}
	}

	data, err := s.tableRepo.ReadTable(ctx, table)
	if err != nil {
		logger.WithError(err).Error("export: erro ao ler tabela")
		return nil, err
	}

	cleaned := DropIncompleteRows(*data)
	if len(cleaned.Rows) == 0 {
		logger.Warn("export: nenhum dado para exportar")
		return nil, fmt.Errorf("%w %s", ErrNoData, table)
	}

	if err := write(cleaned); err != nil {
		logger.WithError(err).Error("export: erro ao gravar planilha")
		return nil, err
	}

	result := &domain.ExportResult{
		ID:           id,
		Table:        table,
		Path:         path,
		RowsRead:     len(data.Rows),
		RowsExported: len(cleaned.Rows),
		FinishedAt:   s.now().UTC(),
	}

	logger.WithFields(log.Fields{
		"id":            result.ID,
		"rows_read":     result.RowsRead,
		"rows_exported": result.RowsExported,
	}).Info("export: planilha gerada")

	return result, nil
}

func (s *Service) tableOrDefault(table string) string {
	if table == "" {
		return s.cfg.Table
	}
	return table
}

// DropIncompleteRows remove toda linha que tenha ao menos um valor nulo
func DropIncompleteRows(table domain.Table) domain.Table {
	kept := make([][]any, 0, len(table.Rows))

	for _, row := range table.Rows {
		complete := true
		for _, value := range row {
			if value == nil {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}

	return domain.Table{Name: table.Name, Columns: table.Columns, Rows: kept}
}
