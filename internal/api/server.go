package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/growth-dashboard-api/internal/api/handler"
	"github.com/vfg2006/growth-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/scheduler"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
	"github.com/vfg2006/growth-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências das rotas
type Services struct {
	DB            handler.Pinger
	Dashboard     dashboard.Dashboarder
	Narrator      insighting.Narrator
	Exporter      exporting.Exporter
	Authenticator authenticating.Authenticator
	ExportSync    *scheduler.ExportSyncService
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Dashboard == nil || services.Authenticator == nil {
		return nil, errors.New("serviço de dashboard e autenticador são obrigatórios")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta rotas e middlewares globais; separado de New para os testes com httptest
func NewHandler(cfg *config.Config, services Services) http.Handler {
	cronServices := handler.CronJobServices{}
	if services.ExportSync != nil {
		cronServices.ExportSyncService = services.ExportSync
	}

	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(services.DB)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Dashboard(services.Dashboard, cfg.Currency.Format())...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	}
	if services.Narrator != nil {
		configs = append(configs, router.WithRoutes(handler.Insights(services.Dashboard, services.Narrator)...))
	}
	if services.Exporter != nil {
		configs = append(configs, router.WithRoutes(handler.Export(services.Exporter)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		log.L.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
