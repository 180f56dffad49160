package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=seed.go -destination=mocks/seed_mock.go -package=mocks

type SeedRepository interface {
	Reseed(ctx context.Context, plan domain.SeedPlan) error
}

type seedRepository struct {
	conn database.Conn
}

func NewSeedRepository(conn database.Conn) SeedRepository {
	return &seedRepository{
		conn: conn,
	}
}

// Reseed apaga as tabelas na ordem do plano e insere as novas linhas, tudo em uma transação.
// Qualquer erro desfaz a operação inteira.
func (r *seedRepository) Reseed(ctx context.Context, plan domain.SeedPlan) error {
	startTime := time.Now()

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range plan.DeleteOrder {
			if err := r.clearTable(ctx, tx, table); err != nil {
				return err
			}
		}

		for _, table := range plan.Inserts {
			if err := r.insertRows(ctx, tx, table); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Dados de teste inseridos com sucesso")
	return nil
}

func (r *seedRepository) clearTable(ctx context.Context, tx *sql.Tx, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}

	query, args, err := r.conn.StatementBuilder().Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao limpar tabela %s: %w", table, err)
	}

	affected, _ := result.RowsAffected()
	logrus.Debugf("Tabela %s limpa (%d linhas removidas)", table, affected)
	return nil
}

// insertRows prepara um único INSERT e executa uma vez por linha
func (r *seedRepository) insertRows(ctx context.Context, tx *sql.Tx, table domain.Table) error {
	if len(table.Rows) == 0 {
		return nil
	}
	if err := ValidateTableName(table.Name); err != nil {
		return err
	}

	query, _, err := r.conn.StatementBuilder().
		Insert(table.Name).
		Columns(table.Columns...).
		Values(table.Rows[0]...).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("erro ao preparar insert em %s: %w", table.Name, err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("linha %d de %s tem %d valores para %d colunas", i+1, table.Name, len(row), len(table.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("erro ao inserir linha %d em %s: %w", i+1, table.Name, err)
		}
	}

	logrus.Infof("%d registros inseridos em %s", len(table.Rows), table.Name)
	return nil
}
