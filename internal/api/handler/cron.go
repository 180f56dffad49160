package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/growth-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

const (
	CronJobTypeExport = "export"
	CronJobTypeAll    = "all"
)

// SyncJob é um job agendado que também pode ser disparado pela API
type SyncJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices liga o tipo da URL ao job correspondente
type CronJobServices struct {
	ExportSyncService SyncJob
}

func (s CronJobServices) jobs() map[string]SyncJob {
	jobs := make(map[string]SyncJob)
	if s.ExportSyncService != nil {
		jobs[CronJobTypeExport] = s.ExportSyncService
	}
	return jobs
}

// RunCronJob dispara o job em background e responde 202
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.jobs()

		var selected map[string]SyncJob
		if cronType == CronJobTypeAll {
			selected = jobs
		} else if job, ok := jobs[cronType]; ok {
			selected = map[string]SyncJob{cronType: job}
		} else {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: export, all", nil)
			return
		}

		started := make(map[string]bool, len(selected))
		for name, job := range selected {
			started[name] = job.TriggerManualSync(r.Context())
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"type":    cronType,
			"started": started,
		}).Info("Cron job disparada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada",
			"type":    cronType,
			"started": started,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
