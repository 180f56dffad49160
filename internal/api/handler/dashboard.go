package handler

import (
	"net/http"

	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/internal/presentation"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/growth-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

// GetDashboard devolve o painel pronto para renderizar. Banco indisponível ainda responde 200,
// com o aviso de erro dentro da visão.
func GetDashboard(service dashboard.Dashboarder, format utils.CurrencyFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := service.BuildSnapshot(r.Context())

		log.ForContext(r.Context()).WithFields(log.Fields{
			"status":  snapshot.Status,
			"kept":    snapshot.KeptRowCount,
			"dropped": snapshot.DroppedRows,
		}).Debug("Dashboard montado")

		writeJSON(w, r, http.StatusOK, presentation.BuildDashboardView(snapshot, format))
	}
}

// GetSnapshot devolve os dados agregados sem formatação
func GetSnapshot(service dashboard.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := service.BuildSnapshot(r.Context())

		if snapshot.Status == domain.SnapshotStatusUnavailable {
			apiErrors.WriteError(w, apiErrors.ErrDashboardUnavailable, "Falha ao conectar ao banco de dados", snapshot.Errors)
			return
		}

		writeJSON(w, r, http.StatusOK, snapshot)
	}
}
