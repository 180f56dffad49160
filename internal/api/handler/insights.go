package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/growth-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

// GenerateInsights monta um snapshot novo e pede a narrativa ao modelo. Só roda sob demanda.
func GenerateInsights(dashboardService dashboard.Dashboarder, narrator insighting.Narrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := dashboardService.BuildSnapshot(r.Context())

		narrative, err := narrator.Narrate(r.Context(), snapshot)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Insights não gerados")

			switch {
			case errors.Is(err, insighting.ErrMissingCredential):
				apiErrors.WriteError(w, apiErrors.ErrInsightsNotConfigured, err.Error(), nil)
			case errors.Is(err, insighting.ErrInsufficientData):
				apiErrors.WriteError(w, apiErrors.ErrInsightsInsufficientData, err.Error(), nil)
			case errors.Is(err, insighting.ErrGeneration):
				apiErrors.WriteError(w, apiErrors.ErrInsightsGeneration, err.Error(), nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar insights", nil)
			}
			return
		}

		writeJSON(w, r, http.StatusOK, narrative)
	}
}
