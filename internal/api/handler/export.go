package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/growth-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadTable gera a planilha em memória e só então escreve a resposta, assim um erro ainda vira JSON
func DownloadTable(service exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := httprouter.ParamsFromContext(r.Context()).ByName("table")

		var buf bytes.Buffer
		result, err := service.StreamTable(r.Context(), table, &buf)
		if err != nil {
			writeExportError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, result.Table, result.ID))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("X-Rows-Exported", strconv.Itoa(result.RowsExported))
		w.WriteHeader(http.StatusOK)

		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Download interrompido")
		}
	}
}

// ExportTableToDir grava a planilha no diretório de exportação do servidor
func ExportTableToDir(service exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := httprouter.ParamsFromContext(r.Context()).ByName("table")

		result, err := service.ExportToDir(r.Context(), table)
		if err != nil {
			writeExportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, result)
	}
}

func writeExportError(w http.ResponseWriter, r *http.Request, err error) {
	log.ForContext(r.Context()).WithError(err).Warn("Exportação falhou")

	switch {
	case errors.Is(err, repository.ErrInvalidTableName):
		apiErrors.WriteError(w, apiErrors.ErrExportInvalidTable, err.Error(), nil)
	case errors.Is(err, repository.ErrTableNotFound):
		apiErrors.WriteError(w, apiErrors.ErrExportTableMissing, err.Error(), nil)
	case errors.Is(err, exporting.ErrNoData):
		apiErrors.WriteError(w, apiErrors.ErrExportNoData, err.Error(), nil)
	case errors.Is(err, spreadsheet.ErrFileLocked):
		apiErrors.WriteError(w, apiErrors.ErrExportFileLocked, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao exportar tabela", nil)
	}
}
