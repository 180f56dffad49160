package dashboard

import (
	"context"

	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/dashboard_mock.go -package=mocks

// Dashboarder executa o pipeline completo: consulta, normalização e agregação
type Dashboarder interface {
	BuildSnapshot(ctx context.Context) domain.DashboardSnapshot
}
