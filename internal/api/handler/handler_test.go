package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/internal/presentation"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating/mocks"
	dashmocks "github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard/mocks"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
	exportmocks "github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting/mocks"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting"
	insightmocks "github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/growth-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/growth-dashboard-api/pkg/middleware"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func withParams(r *http.Request, params ...httprouter.Param) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), httprouter.ParamsKey, httprouter.Params(params)))
}

func decodeAPIError(t *testing.T, body io.Reader) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

func okSnapshot() domain.DashboardSnapshot {
	return domain.DashboardSnapshot{
		Status: domain.SnapshotStatusOK,
		Summary: domain.SummaryMetrics{
			TotalAmount:       decimal.RequireFromString("300"),
			UniqueClientCount: 2,
			AverageAmount:     decimal.RequireFromString("150"),
			PaymentCount:      2,
			HasAverage:        true,
		},
		MonthlyTotals: []domain.MonthlyTotal{
			{Month: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("300")},
		},
		TopClients: []domain.TopClientEntry{
			{ClientID: 1, ClientName: "Cliente A", TotalAmount: decimal.RequireFromString("200")},
		},
	}
}

func TestGetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := dashmocks.NewMockDashboarder(ctrl)

	tests := []struct {
		name           string
		snapshot       domain.DashboardSnapshot
		expectedStatus string
	}{
		{name: "Painel completo", snapshot: okSnapshot(), expectedStatus: "ok"},
		{name: "Banco indisponível ainda responde 200", snapshot: domain.DashboardSnapshot{Status: domain.SnapshotStatusUnavailable, Errors: []string{"connection refused"}}, expectedStatus: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDashboard.EXPECT().BuildSnapshot(gomock.Any()).Return(tt.snapshot)

			rec := httptest.NewRecorder()
			GetDashboard(mockDashboard, utils.DefaultCurrencyFormat).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var view presentation.DashboardView
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
			assert.Equal(t, tt.expectedStatus, view.Status)
			assert.Equal(t, presentation.Title, view.Title)
		})
	}
}

func TestGetSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := dashmocks.NewMockDashboarder(ctrl)

	t.Run("Snapshot disponível", func(t *testing.T) {
		mockDashboard.EXPECT().BuildSnapshot(gomock.Any()).Return(okSnapshot())

		rec := httptest.NewRecorder()
		GetSnapshot(mockDashboard).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/snapshot", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("Linhas brutas em bytes do driver saem como texto", func(t *testing.T) {
		snapshot := okSnapshot()
		snapshot.RawRows = []domain.RawPaymentRow{
			{ClientID: 1, ClientName: "Cliente A", PaymentID: 10, PaymentDate: []byte("2024-01-10"), Amount: []byte("100.50")},
		}
		mockDashboard.EXPECT().BuildSnapshot(gomock.Any()).Return(snapshot)

		rec := httptest.NewRecorder()
		GetSnapshot(mockDashboard).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/snapshot", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `"data_pagamento":"2024-01-10"`)
		assert.Contains(t, body, `"valor_pago":"100.50"`)
		assert.NotContains(t, body, "MTAwLjUw")
	})

	t.Run("Banco indisponível", func(t *testing.T) {
		mockDashboard.EXPECT().BuildSnapshot(gomock.Any()).Return(domain.DashboardSnapshot{Status: domain.SnapshotStatusUnavailable})

		rec := httptest.NewRecorder()
		GetSnapshot(mockDashboard).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/snapshot", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, apiErrors.ErrDashboardUnavailable, decodeAPIError(t, rec.Body).Code)
	})
}

func TestGenerateInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := dashmocks.NewMockDashboarder(ctrl)
	mockNarrator := insightmocks.NewMockNarrator(ctrl)

	tests := []struct {
		name           string
		narrateErr     error
		expectedStatus int
		expectedCode   string
	}{
		{name: "Sucesso", expectedStatus: http.StatusOK},
		{name: "Sem chave", narrateErr: insighting.ErrMissingCredential, expectedStatus: http.StatusServiceUnavailable, expectedCode: apiErrors.ErrInsightsNotConfigured},
		{name: "Dados insuficientes", narrateErr: insighting.ErrInsufficientData, expectedStatus: http.StatusUnprocessableEntity, expectedCode: apiErrors.ErrInsightsInsufficientData},
		{name: "Falha do modelo", narrateErr: errors.Join(insighting.ErrGeneration, errors.New("quota")), expectedStatus: http.StatusBadGateway, expectedCode: apiErrors.ErrInsightsGeneration},
		{name: "Erro inesperado", narrateErr: errors.New("???"), expectedStatus: http.StatusInternalServerError, expectedCode: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDashboard.EXPECT().BuildSnapshot(gomock.Any()).Return(okSnapshot())
			if tt.narrateErr != nil {
				mockNarrator.EXPECT().Narrate(gomock.Any(), gomock.Any()).Return(nil, tt.narrateErr)
			} else {
				mockNarrator.EXPECT().Narrate(gomock.Any(), gomock.Any()).Return(&domain.Narrative{Text: "- insight", Model: "gemini"}, nil)
			}

			rec := httptest.NewRecorder()
			GenerateInsights(mockDashboard, mockNarrator).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/dashboard/insights", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec.Body).Code)
				return
			}
			assert.Contains(t, rec.Body.String(), "- insight")
		})
	}
}

func TestDownloadTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExporter := exportmocks.NewMockExporter(ctrl)

	t.Run("Planilha como anexo", func(t *testing.T) {
		mockExporter.EXPECT().
			StreamTable(gomock.Any(), "contratos", gomock.Any()).
			DoAndReturn(func(_ context.Context, table string, out io.Writer) (*domain.ExportResult, error) {
				_, err := out.Write([]byte("PK-conteudo"))
				return &domain.ExportResult{ID: "x1", Table: table, RowsExported: 3}, err
			})

		req := withParams(httptest.NewRequest(http.MethodGet, "/v1/export/contratos", nil), httprouter.Param{Key: "table", Value: "contratos"})
		rec := httptest.NewRecorder()
		DownloadTable(mockExporter).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="contratos_x1.xlsx"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "3", rec.Header().Get("X-Rows-Exported"))
		assert.Equal(t, "PK-conteudo", rec.Body.String())
	})

	errorCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "Nome inválido", err: repository.ErrInvalidTableName, expectedStatus: http.StatusBadRequest, expectedCode: apiErrors.ErrExportInvalidTable},
		{name: "Tabela inexistente", err: repository.ErrTableNotFound, expectedStatus: http.StatusNotFound, expectedCode: apiErrors.ErrExportTableMissing},
		{name: "Sem dados", err: exporting.ErrNoData, expectedStatus: http.StatusNotFound, expectedCode: apiErrors.ErrExportNoData},
		{name: "Arquivo em uso", err: spreadsheet.ErrFileLocked, expectedStatus: http.StatusConflict, expectedCode: apiErrors.ErrExportFileLocked},
		{name: "Erro de banco", err: errors.New("timeout"), expectedStatus: http.StatusInternalServerError, expectedCode: apiErrors.ErrDatabaseOperation},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			mockExporter.EXPECT().StreamTable(gomock.Any(), "x", gomock.Any()).Return(nil, tt.err)

			req := withParams(httptest.NewRequest(http.MethodGet, "/v1/export/x", nil), httprouter.Param{Key: "table", Value: "x"})
			rec := httptest.NewRecorder()
			DownloadTable(mockExporter).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec.Body).Code)
		})
	}
}

func TestExportTableToDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExporter := exportmocks.NewMockExporter(ctrl)
	mockExporter.EXPECT().
		ExportToDir(gomock.Any(), "contratos").
		Return(&domain.ExportResult{ID: "x1", Table: "contratos", Path: "exports/contratos_x1.xlsx"}, nil)

	req := withParams(httptest.NewRequest(http.MethodPost, "/v1/export/contratos", nil), httprouter.Param{Key: "table", Value: "contratos"})
	rec := httptest.NewRecorder()
	ExportTableToDir(mockExporter).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "exports/contratos_x1.xlsx")
}

type fakeJob struct {
	started bool
	calls   int
}

func (f *fakeJob) TriggerManualSync(context.Context) bool {
	f.calls++
	return f.started
}

func (f *fakeJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": true}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name           string
		cronType       string
		expectedStatus int
		expectedCalls  int
	}{
		{name: "Exportação", cronType: "export", expectedStatus: http.StatusAccepted, expectedCalls: 1},
		{name: "Todas", cronType: "all", expectedStatus: http.StatusAccepted, expectedCalls: 1},
		{name: "Tipo inválido", cronType: "meta", expectedStatus: http.StatusBadRequest},
		{name: "Tipo vazio", cronType: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeJob{started: true}
			services := CronJobServices{ExportSyncService: job}

			req := withParams(httptest.NewRequest(http.MethodPost, "/v1/cron/run", nil), httprouter.Param{Key: "type", Value: tt.cronType})
			rec := httptest.NewRecorder()
			RunCronJob(services).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCalls, job.calls)
		})
	}

	t.Run("Status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetCronStatus(CronJobServices{ExportSyncService: &fakeJob{}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"export":{"sync_enabled":true}`)
	})
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)

	tests := []struct {
		name           string
		body           string
		setup          func()
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Login válido",
			body: `{"email":"admin@empresa.com","password":"segredo123"}`,
			setup: func() {
				mockAuth.EXPECT().Enabled().Return(true)
				mockAuth.EXPECT().LoginUser("admin@empresa.com", "segredo123").Return("token-jwt", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Corpo inválido",
			body: `{`,
			setup: func() {
				mockAuth.EXPECT().Enabled().Return(true)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name: "Usuário inexistente responde como credencial inválida",
			body: `{"email":"x@y.com","password":"segredo123"}`,
			setup: func() {
				mockAuth.EXPECT().Enabled().Return(true)
				mockAuth.EXPECT().LoginUser(gomock.Any(), gomock.Any()).
					Return("", authenticating.NewUserAuthError(authenticating.ErrUserNotFound, apiErrors.ErrUserNotFound, "x@y.com", "Usuário não encontrado"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name: "Usuário desativado",
			body: `{"email":"x@y.com","password":"segredo123"}`,
			setup: func() {
				mockAuth.EXPECT().Enabled().Return(true)
				mockAuth.EXPECT().LoginUser(gomock.Any(), gomock.Any()).
					Return("", authenticating.NewUserAuthError(authenticating.ErrUserDisabled, apiErrors.ErrUserDisabled, "x@y.com", "Conta desativada"))
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrUserDisabled,
		},
		{
			name: "Autenticação desligada",
			body: `{}`,
			setup: func() {
				mockAuth.EXPECT().Enabled().Return(false)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := httptest.NewRecorder()
			Login(mockAuth).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec.Body).Code)
				return
			}
			assert.Contains(t, rec.Body.String(), "token-jwt")
		})
	}
}

func TestGetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)
	claims := &domain.Claims{UserName: "Admin", UserEmail: "admin@empresa.com", UserRole: domain.RoleAdmin}

	mockAuth.EXPECT().Enabled().Return(true)
	mockAuth.EXPECT().GetUserProfile("admin@empresa.com").Return(&domain.User{Name: "Admin", Email: "admin@empresa.com", Role: domain.RoleAdmin, Active: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	rec := httptest.NewRecorder()
	GetMe(mockAuth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"admin@empresa.com"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthcheck(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		database string
		status   string
	}{
		{name: "Banco no ar", db: fakePinger{}, database: "up", status: "ok"},
		{name: "Banco fora", db: fakePinger{err: errors.New("refused")}, database: "down", status: "degraded"},
		{name: "Sem banco", db: nil, database: "not_configured", status: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthcheckHandler(tt.db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.database, resp.Database)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}
