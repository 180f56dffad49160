package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleRows() []domain.RawPaymentRow {
	return []domain.RawPaymentRow{
		{ClientID: 1, ClientName: "Cliente A", PaymentID: 101, PaymentDate: "2024-03-05", Amount: "50"},
		{ClientID: 2, ClientName: "Cliente B", PaymentID: 102, PaymentDate: "2024-02-01", Amount: "200"},
		{ClientID: 3, ClientName: "Cliente C", PaymentID: 103, PaymentDate: nil, Amount: "999"},
		{ClientID: 1, ClientName: "Cliente A", PaymentID: 100, PaymentDate: "2024-01-10", Amount: "100"},
	}
}

func newTestService(repo *mocks.MockPaymentRepository, opts Options) *Service {
	service := NewServiceWithOptions(repo, opts)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestService_BuildSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPaymentRepository(ctrl)

	tests := []struct {
		name     string
		opts     Options
		setup    func()
		validate func(t *testing.T, snapshot domain.DashboardSnapshot)
	}{
		{
			name: "Pipeline completo com uma linha descartada",
			setup: func() {
				mockRepo.EXPECT().ListPaymentRows(gomock.Any()).Return(sampleRows(), nil)
			},
			validate: func(t *testing.T, snapshot domain.DashboardSnapshot) {
				assert.Equal(t, domain.SnapshotStatusOK, snapshot.Status)
				assert.Empty(t, snapshot.Errors)
				assert.Equal(t, 4, snapshot.RawRowCount)
				assert.Equal(t, 3, snapshot.KeptRowCount)
				assert.Equal(t, 1, snapshot.DroppedRows)
				assert.Len(t, snapshot.RawRows, 4)

				assertDecimal(t, "350", snapshot.Summary.TotalAmount)
				assert.Equal(t, 2, snapshot.Summary.UniqueClientCount)
				require.Len(t, snapshot.TopClients, 2)
				assert.Equal(t, "Cliente B", snapshot.TopClients[0].ClientName)
				assert.Len(t, snapshot.MonthlyTotals, 3)
				assert.Len(t, snapshot.Growth.Clients, 2)
				require.Len(t, snapshot.LatestPayments, 3)
				assert.Equal(t, int64(101), snapshot.LatestPayments[0].PaymentID)
				assert.Equal(t, fixedNow, snapshot.GeneratedAt)
				assert.True(t, snapshot.CanNarrate())
			},
		},
		{
			name: "Limites de pré-visualização",
			opts: Options{TopClientsLimit: 1, LatestPaymentsLimit: 1, RawPreviewLimit: 2},
			setup: func() {
				mockRepo.EXPECT().ListPaymentRows(gomock.Any()).Return(sampleRows(), nil)
			},
			validate: func(t *testing.T, snapshot domain.DashboardSnapshot) {
				assert.Len(t, snapshot.RawRows, 2)
				assert.Equal(t, 4, snapshot.RawRowCount)
				assert.Len(t, snapshot.TopClients, 1)
				assert.Len(t, snapshot.LatestPayments, 1)
			},
		},
		{
			name: "Banco indisponível",
			setup: func() {
				mockRepo.EXPECT().ListPaymentRows(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, snapshot domain.DashboardSnapshot) {
				assert.Equal(t, domain.SnapshotStatusUnavailable, snapshot.Status)
				require.Len(t, snapshot.Errors, 1)
				assert.Contains(t, snapshot.Errors[0], "connection refused")
				assert.Empty(t, snapshot.TopClients)
				assert.NotNil(t, snapshot.MonthlyTotals)
				assert.False(t, snapshot.Summary.HasAverage)
				assert.False(t, snapshot.CanNarrate())
			},
		},
		{
			name: "Sem pagamentos",
			setup: func() {
				mockRepo.EXPECT().ListPaymentRows(gomock.Any()).Return([]domain.RawPaymentRow{}, nil)
			},
			validate: func(t *testing.T, snapshot domain.DashboardSnapshot) {
				assert.Equal(t, domain.SnapshotStatusEmpty, snapshot.Status)
				assert.Equal(t, 0, snapshot.Summary.UniqueClientCount)
				assert.True(t, snapshot.Growth.IsEmpty())
			},
		},
		{
			name: "Todas as linhas descartadas",
			setup: func() {
				mockRepo.EXPECT().ListPaymentRows(gomock.Any()).Return([]domain.RawPaymentRow{
					{ClientID: 1, PaymentDate: "x", Amount: "1"},
				}, nil)
			},
			validate: func(t *testing.T, snapshot domain.DashboardSnapshot) {
				assert.Equal(t, domain.SnapshotStatusEmpty, snapshot.Status)
				assert.Equal(t, 1, snapshot.DroppedRows)
				assert.Len(t, snapshot.RawRows, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			tt.validate(t, newTestService(mockRepo, tt.opts).BuildSnapshot(context.Background()))
		})
	}
}

func TestService_BuildSnapshot_SemRepositorio(t *testing.T) {
	snapshot := NewService(nil, &config.Config{}).BuildSnapshot(context.Background())

	assert.Equal(t, domain.SnapshotStatusUnavailable, snapshot.Status)
	assert.NotEmpty(t, snapshot.Errors)
}

func TestService_BuildSnapshot_FalhaIsolada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPaymentRepository(ctrl)
	mockRepo.EXPECT().ListPaymentRows(gomock.Any()).Return(sampleRows(), nil)

	service := newTestService(mockRepo, Options{})
	service.derive.cumulativeGrowth = func([]domain.PaymentRecord) domain.GrowthTable {
		panic("pivô inconsistente")
	}

	snapshot := service.BuildSnapshot(context.Background())

	assert.Equal(t, domain.SnapshotStatusPartial, snapshot.Status)
	require.Len(t, snapshot.Errors, 1)
	assert.Contains(t, snapshot.Errors[0], "crescimento acumulado")
	assert.True(t, snapshot.Growth.IsEmpty())

	// As outras agregações continuam disponíveis
	assert.Len(t, snapshot.TopClients, 2)
	assert.Len(t, snapshot.MonthlyTotals, 3)
	assert.True(t, snapshot.CanNarrate())
}
