package insighting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func testConfig(apiKey string) *config.Config {
	cfg := &config.Config{}
	cfg.Gemini.APIKey = apiKey
	cfg.Currency = config.Currency{Symbol: "R$", ThousandsSeparator: ".", DecimalSeparator: ",", Precision: 2}
	return cfg
}

func narratableSnapshot() domain.DashboardSnapshot {
	return domain.DashboardSnapshot{
		Status: domain.SnapshotStatusOK,
		Summary: domain.SummaryMetrics{
			TotalAmount:       decimal.RequireFromString("1234.5"),
			UniqueClientCount: 2,
			AverageAmount:     decimal.RequireFromString("411.5"),
			PaymentCount:      3,
			HasAverage:        true,
		},
		MonthlyTotals: []domain.MonthlyTotal{
			{Month: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("1000")},
			{Month: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("234.5")},
		},
		TopClients: []domain.TopClientEntry{
			{ClientID: 1, ClientName: "Ótica Central", TotalAmount: decimal.RequireFromString("1000")},
			{ClientID: 2, ClientName: "Loja | Norte", TotalAmount: decimal.RequireFromString("234.5")},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(narratableSnapshot(), utils.DefaultCurrencyFormat)

	assert.True(t, strings.HasPrefix(prompt, "Analise os dados de pagamentos de uma empresa"))
	assert.Contains(t, prompt, "## Receita Total Geral:\nR$ 1.234,50")
	assert.Contains(t, prompt, "## Número de Clientes Únicos com Pagamento:\n2")
	assert.Contains(t, prompt, "## Valor Médio por Pagamento:\nR$ 411,50")
	assert.Contains(t, prompt, "## Total Pago por Mês (Dados):\n| Mês | Valor Pago |\n| --- | --- |\n| 2024-01 | 1000.00 |\n| 2024-02 | 234.50 |")
	assert.Contains(t, prompt, "## Top 2 Clientes por Total Pago (Dados):")
	assert.Contains(t, prompt, `| Loja \| Norte | 234.50 |`)
	assert.Contains(t, prompt, "quais são os principais insights e recomendações de negócios?")

	t.Run("Média sem pagamentos aparece como N/A", func(t *testing.T) {
		snapshot := narratableSnapshot()
		snapshot.Summary.HasAverage = false

		assert.Contains(t, BuildPrompt(snapshot, utils.DefaultCurrencyFormat), "## Valor Médio por Pagamento:\nN/A")
	})
}

func TestService_Narrate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenerator := mocks.NewMockTextGenerator(ctrl)

	tests := []struct {
		name        string
		apiKey      string
		snapshot    func() domain.DashboardSnapshot
		setup       func()
		expectedErr error
		validate    func(t *testing.T, narrative *domain.Narrative)
	}{
		{
			name:     "Gera insights com dados suficientes",
			apiKey:   "chave",
			snapshot: narratableSnapshot,
			setup: func() {
				mockGenerator.EXPECT().Model().Return("gemini-2.0-flash").AnyTimes()
				mockGenerator.EXPECT().
					GenerateText(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, prompt string) (string, error) {
						assert.Contains(t, prompt, "Ótica Central")
						return "- Receita concentrada em um cliente", nil
					})
			},
			validate: func(t *testing.T, narrative *domain.Narrative) {
				require.NotNil(t, narrative)
				assert.Equal(t, "- Receita concentrada em um cliente", narrative.Text)
				assert.Equal(t, "gemini-2.0-flash", narrative.Model)
				assert.False(t, narrative.GeneratedAt.IsZero())
			},
		},
		{
			name:        "Sem chave da API",
			apiKey:      "",
			snapshot:    narratableSnapshot,
			setup:       func() {},
			expectedErr: ErrMissingCredential,
		},
		{
			name:   "Banco indisponível",
			apiKey: "chave",
			snapshot: func() domain.DashboardSnapshot {
				return domain.DashboardSnapshot{Status: domain.SnapshotStatusUnavailable}
			},
			setup:       func() {},
			expectedErr: ErrInsufficientData,
		},
		{
			name:   "Sem totais mensais",
			apiKey: "chave",
			snapshot: func() domain.DashboardSnapshot {
				snapshot := narratableSnapshot()
				snapshot.MonthlyTotals = nil
				return snapshot
			},
			setup:       func() {},
			expectedErr: ErrInsufficientData,
		},
		{
			name:   "Sem top clientes",
			apiKey: "chave",
			snapshot: func() domain.DashboardSnapshot {
				snapshot := narratableSnapshot()
				snapshot.TopClients = []domain.TopClientEntry{}
				return snapshot
			},
			setup:       func() {},
			expectedErr: ErrInsufficientData,
		},
		{
			name:     "Erro do serviço de IA",
			apiKey:   "chave",
			snapshot: narratableSnapshot,
			setup: func() {
				mockGenerator.EXPECT().Model().Return("gemini-2.0-flash").AnyTimes()
				mockGenerator.EXPECT().
					GenerateText(gomock.Any(), gomock.Any()).
					Return("", errors.New("quota exceeded"))
			},
			expectedErr: ErrGeneration,
		},
		{
			name:     "Resposta vazia",
			apiKey:   "chave",
			snapshot: narratableSnapshot,
			setup: func() {
				mockGenerator.EXPECT().Model().Return("gemini-2.0-flash").AnyTimes()
				mockGenerator.EXPECT().
					GenerateText(gomock.Any(), gomock.Any()).
					Return("   ", nil)
			},
			expectedErr: ErrGeneration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			service := NewService(mockGenerator, testConfig(tt.apiKey))
			narrative, err := service.Narrate(context.Background(), tt.snapshot())

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, narrative)
				return
			}

			require.NoError(t, err)
			tt.validate(t, narrative)
		})
	}
}

func TestService_Narrate_SemGerador(t *testing.T) {
	service := NewService(nil, testConfig("chave"))

	_, err := service.Narrate(context.Background(), narratableSnapshot())
	assert.ErrorIs(t, err, ErrMissingCredential)
}
