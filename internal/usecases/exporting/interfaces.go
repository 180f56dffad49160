package exporting

import (
	"context"
	"io"

	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/exporting_mock.go -package=mocks

type Exporter interface {
	// ExportTable grava a tabela em path. Nome e caminho vazios usam os valores da configuração.
	ExportTable(ctx context.Context, table, path string) (*domain.ExportResult, error)
	// ExportToDir grava em EXPORT_DIR com um nome de arquivo único por execução
	ExportToDir(ctx context.Context, table string) (*domain.ExportResult, error)
	StreamTable(ctx context.Context, table string, out io.Writer) (*domain.ExportResult, error)
}
