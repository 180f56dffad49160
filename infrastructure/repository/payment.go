// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=payment.go -destination=mocks/payment_mock.go -package=mocks

const (
	paymentsTable = "pagamentos pag"
)

type PaymentRepository interface {
	ListPaymentRows(ctx context.Context) ([]domain.RawPaymentRow, error)
}

type paymentRepository struct {
	conn database.Conn
}

func NewPaymentRepository(conn database.Conn) PaymentRepository {
	return &paymentRepository{
		conn: conn,
	}
}

// ListPaymentRows traz todos os pagamentos com o cliente do contrato, do mais recente para o mais antigo.
// Data e valor são lidos sem conversão; quem normaliza é o pipeline do dashboard.
func (r *paymentRepository) ListPaymentRows(ctx context.Context) ([]domain.RawPaymentRow, error) {
	query, args, err := r.conn.StatementBuilder().
		Select(
			"cli.id AS cliente_id",
			"cli.nome AS cliente_nome",
			"pag.id AS pagamento_id",
			"pag.data_pagamento AS data_pagamento",
			"pag.valor_pago AS valor_pago",
		).
		From(paymentsTable).
		Join("contratos con ON pag.contrato_id = con.id").
		Join("clientes cli ON con.cliente_id = cli.id").
		OrderBy("pag.data_pagamento DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result := make([]domain.RawPaymentRow, 0)

	err = r.conn.WithSession(ctx, func(q database.Queryer) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("erro ao executar a query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				row  domain.RawPaymentRow
				name sql.NullString
			)

			if err := rows.Scan(&row.ClientID, &name, &row.PaymentID, &row.PaymentDate, &row.Amount); err != nil {
				return fmt.Errorf("erro ao escanear pagamento: %w", err)
			}
			row.ClientName = name.String

			result = append(result, row)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
