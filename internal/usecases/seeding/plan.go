package seeding

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

// Ordem de limpeza respeita as chaves estrangeiras
var deleteOrder = []string{
	"pagamentos",
	"contratos",
	"clientes",
	"enderecos",
	"produtos",
	"categorias",
	"funcionarios",
}

var (
	employeeRoles  = []string{"Gerente", "Analista", "Suporte", "Vendedor", "Estagiário"}
	contractStatus = []string{"ativo", "inativo", "pendente", "cancelado"}

	birthDate         = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	contractsStart    = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	paymentsStart     = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	paymentsEnd       = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	paymentsRangeDays = int(paymentsEnd.Sub(paymentsStart).Hours() / 24)
)

// BuildPlan gera n linhas por tabela com chaves estrangeiras dentro de 1..n
func BuildPlan(rng *rand.Rand, n int, now time.Time) domain.SeedPlan {
	// intn devolve um inteiro em [min, max]
	intn := func(lo, hi int) int {
		return lo + rng.IntN(hi-lo+1)
	}
	// uniform sorteia um valor monetário em [lo, hi] já com centavos
	uniform := func(lo, hi float64) decimal.Decimal {
		return utils.RoundMoney(decimal.NewFromFloat(lo + rng.Float64()*(hi-lo)))
	}
	days := func(d int) time.Duration {
		return time.Duration(d) * 24 * time.Hour
	}

	categorias := domain.Table{Name: "categorias", Columns: []string{"id", "nome"}}
	enderecos := domain.Table{Name: "enderecos", Columns: []string{"id", "rua", "numero", "bairro", "cidade", "estado", "cep"}}
	clientes := domain.Table{Name: "clientes", Columns: []string{"id", "nome", "email", "telefone", "data_nascimento", "endereco_id"}}
	produtos := domain.Table{Name: "produtos", Columns: []string{"id", "nome", "categoria_id", "preco_diaria", "quantidade_disponivel"}}
	funcionarios := domain.Table{Name: "funcionarios", Columns: []string{"id", "nome", "cargo", "salario", "data_admissao"}}
	contratos := domain.Table{Name: "contratos", Columns: []string{"id", "cliente_id", "produto_id", "data_inicio", "data_fim", "status"}}
	pagamentos := domain.Table{Name: "pagamentos", Columns: []string{"id", "contrato_id", "valor_pago", "data_pagamento"}}

	for i := 1; i <= n; i++ {
		categorias.Rows = append(categorias.Rows, []any{i, fmt.Sprintf("Categoria %d", i)})

		enderecos.Rows = append(enderecos.Rows, []any{
			i, fmt.Sprintf("Rua %d", i), fmt.Sprint(i), fmt.Sprintf("Bairro %d", i),
			fmt.Sprintf("Cidade %d", i), "UF", fmt.Sprintf("CEP-%03d", i),
		})

		phone := fmt.Sprintf("(%d) 9%d-%d", intn(10, 99), intn(1000, 9999), intn(1000, 9999))
		clientes.Rows = append(clientes.Rows, []any{
			i, fmt.Sprintf("Cliente %d", i), fmt.Sprintf("cliente%d@email.com", i), phone, birthDate, intn(1, n),
		})

		produtos.Rows = append(produtos.Rows, []any{
			i, fmt.Sprintf("Produto %d", i), intn(1, n), uniform(50, 500), intn(5, 100),
		})

		funcionarios.Rows = append(funcionarios.Rows, []any{
			i, fmt.Sprintf("Funcionario %d", i), employeeRoles[rng.IntN(len(employeeRoles))],
			uniform(2000, 10000), now.Add(-days(intn(365, 1825))),
		})

		start := contractsStart.Add(days(intn(0, 730)))
		contratos.Rows = append(contratos.Rows, []any{
			i, intn(1, n), intn(1, n), start, start.Add(days(intn(30, 365))),
			contractStatus[rng.IntN(len(contractStatus))],
		})

		pagamentos.Rows = append(pagamentos.Rows, []any{
			i, intn(1, n), uniform(100, 1000), paymentsStart.Add(days(intn(0, paymentsRangeDays))),
		})
	}

	return domain.SeedPlan{
		DeleteOrder: deleteOrder,
		Inserts:     []domain.Table{categorias, enderecos, clientes, produtos, funcionarios, contratos, pagamentos},
	}
}
