package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

func newTestConnection(t *testing.T) *database.Connection {
	t.Helper()

	cfg := config.Database{Driver: database.DriverSQLite, URL: filepath.Join(t.TempDir(), "repo.db")}
	cfg.DSN = config.BuildDSN(cfg)
	require.NoError(t, database.RunMigrations(cfg))

	conn, err := database.NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func basePlan() domain.SeedPlan {
	return domain.SeedPlan{
		DeleteOrder: []string{"pagamentos", "contratos", "clientes"},
		Inserts: []domain.Table{
			{
				Name:    "clientes",
				Columns: []string{"id", "nome"},
				Rows:    [][]any{{1, "Cliente A"}, {2, "Cliente B"}},
			},
			{
				Name:    "contratos",
				Columns: []string{"id", "cliente_id", "status"},
				Rows:    [][]any{{10, 1, "ativo"}, {20, 2, nil}},
			},
			{
				Name:    "pagamentos",
				Columns: []string{"id", "contrato_id", "valor_pago", "data_pagamento"},
				Rows: [][]any{
					{100, 10, "100", "2024-01-10"},
					{101, 10, "50", "2024-03-05"},
					{102, 20, "200", "2024-02-01"},
				},
			},
		},
	}
}

func TestPaymentRepository_ListPaymentRows(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()

	require.NoError(t, NewSeedRepository(conn).Reseed(ctx, basePlan()))

	rows, err := NewPaymentRepository(conn).ListPaymentRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Mais recente primeiro
	assert.Equal(t, int64(101), rows[0].PaymentID)
	assert.Equal(t, int64(102), rows[1].PaymentID)
	assert.Equal(t, int64(100), rows[2].PaymentID)

	assert.Equal(t, int64(1), rows[0].ClientID)
	assert.Equal(t, "Cliente A", rows[0].ClientName)
	assert.Equal(t, "Cliente B", rows[1].ClientName)
	assert.NotNil(t, rows[0].PaymentDate)
	assert.NotNil(t, rows[0].Amount)
}

func TestPaymentRepository_SemPagamentos(t *testing.T) {
	conn := newTestConnection(t)

	rows, err := NewPaymentRepository(conn).ListPaymentRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTableRepository_ReadTable(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	require.NoError(t, NewSeedRepository(conn).Reseed(ctx, basePlan()))

	repo := NewTableRepository(conn)

	t.Run("Lê colunas e linhas", func(t *testing.T) {
		table, err := repo.ReadTable(ctx, "contratos")
		require.NoError(t, err)

		assert.Equal(t, "contratos", table.Name)
		assert.Equal(t, []string{"id", "cliente_id", "produto_id", "data_inicio", "data_fim", "status"}, table.Columns)
		require.Len(t, table.Rows, 2)
		assert.Nil(t, table.Rows[1][5])
	})

	t.Run("Nome inválido", func(t *testing.T) {
		_, err := repo.ReadTable(ctx, "contratos; DROP TABLE clientes")
		assert.ErrorIs(t, err, ErrInvalidTableName)
	})

	t.Run("Tabela inexistente", func(t *testing.T) {
		_, err := repo.ReadTable(ctx, "nao_existe")
		assert.ErrorIs(t, err, ErrTableNotFound)
	})
}

func TestSeedRepository_Reseed(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := NewSeedRepository(conn)

	require.NoError(t, repo.Reseed(ctx, basePlan()))

	t.Run("Recarga substitui os dados", func(t *testing.T) {
		require.NoError(t, repo.Reseed(ctx, basePlan()))

		var count int
		require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM pagamentos").Scan(&count))
		assert.Equal(t, 3, count)
	})

	t.Run("Erro desfaz tudo", func(t *testing.T) {
		plan := basePlan()
		plan.Inserts[2].Rows = append(plan.Inserts[2].Rows, []any{100, 10, "1", "2024-01-01"}) // id duplicado

		err := repo.Reseed(ctx, plan)
		require.Error(t, err)

		var total float64
		require.NoError(t, conn.QueryRowContext(ctx, "SELECT SUM(valor_pago) FROM pagamentos").Scan(&total))
		assert.True(t, decimal.NewFromFloat(total).Equal(decimal.NewFromInt(350)))
	})

	t.Run("Linha com número errado de colunas", func(t *testing.T) {
		plan := basePlan()
		plan.Inserts[0].Rows = append(plan.Inserts[0].Rows, []any{3})

		err := repo.Reseed(ctx, plan)
		assert.ErrorContains(t, err, "linha 3 de clientes")
	})
}
