package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// HealthcheckHandler responde 200 mesmo com o banco fora; o painel continua no ar e mostra o erro
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Database: "up", Time: time.Now().UTC()}

		if db == nil {
			resp.Database = "not_configured"
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Database = "down"
			}
		}

		writeJSON(w, r, http.StatusOK, resp)
	})
}
