package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=table.go -destination=mocks/table_mock.go -package=mocks

var (
	ErrInvalidTableName = errors.New("nome de tabela inválido")
	ErrTableNotFound    = errors.New("tabela não encontrada")

	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

const undefinedTableCode = "42P01"

type TableRepository interface {
	ReadTable(ctx context.Context, table string) (*domain.Table, error)
}

type tableRepository struct {
	conn database.Conn
}

func NewTableRepository(conn database.Conn) TableRepository {
	return &tableRepository{
		conn: conn,
	}
}

// ValidateTableName aceita apenas identificadores simples, o nome entra direto no SQL
func ValidateTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

// ReadTable executa SELECT * na tabela e devolve colunas e linhas como vieram do driver
func (r *tableRepository) ReadTable(ctx context.Context, table string) (*domain.Table, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}

	query, args, err := r.conn.StatementBuilder().
		Select("*").
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result := &domain.Table{Name: table, Rows: make([][]any, 0)}

	err = r.conn.WithSession(ctx, func(q database.Queryer) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return classifyTableError(table, err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("erro ao ler colunas: %w", err)
		}
		result.Columns = columns

		for rows.Next() {
			values := make([]any, len(columns))
			pointers := make([]any, len(columns))
			for i := range values {
				pointers[i] = &values[i]
			}

			if err := rows.Scan(pointers...); err != nil {
				return fmt.Errorf("erro ao escanear linha de %s: %w", table, err)
			}

			for i, value := range values {
				values[i] = cellValue(value)
			}
			result.Rows = append(result.Rows, values)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// cellValue converte []byte em texto para a planilha; os demais tipos passam direto
func cellValue(value any) any {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}

func classifyTableError(table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == undefinedTableCode {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	// sqlite e firebird só informam na mensagem
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "no such table") || strings.Contains(msg, "table unknown") {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	return fmt.Errorf("erro ao executar a query: %w", err)
}
