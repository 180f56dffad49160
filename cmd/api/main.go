package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/internal/api"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/scheduler"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

const pingTimeout = 5 * time.Second

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Configuração inválida")
	}

	if err := log.Setup(cfg.App.LogLevel, cfg.App.Env); err != nil {
		log.L.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	log.L.WithFields(log.Fields{"level": logrus.GetLevel().String(), "env": cfg.App.Env}).Info("Logs configurados")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	if cfg.Database.Migrate {
		if err := database.RunMigrations(cfg.Database); err != nil {
			log.L.WithError(err).Error("Erro ao aplicar migrações")
		}
	}

	paymentRepo := repository.NewPaymentRepository(conn)
	tableRepo := repository.NewTableRepository(conn)
	userRepo := repository.NewConfigUserRepository(cfg.Auth.Users)

	dashboardService := dashboard.NewService(paymentRepo, cfg)

	geminiService := gemini.New(cfg, geminiclient.NewClient())
	narrator := insighting.NewService(geminiService, cfg)

	exporter := exporting.NewService(tableRepo, cfg)

	authenticator := authenticating.NewService(userRepo, cfg)

	exportSyncService := scheduler.NewExportSyncService(exporter, cfg)
	if err := exportSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de exportação")
	} else if cfg.ExportSync.Enabled {
		log.L.Info("Agendador de exportação iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		DB:            conn,
		Dashboard:     dashboardService,
		Narrator:      narrator,
		Exporter:      exporter,
		Authenticator: authenticator,
		ExportSync:    exportSyncService,
	})
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// dbconn abre o pool. Falha no ping não derruba a API: o painel mostra o banco como indisponível.
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao configurar conexão com o banco")
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.Ping(pingCtx); err != nil {
		log.L.WithError(err).WithField("driver", dbConfig.Driver).Error("Banco de dados inacessível, seguindo sem conexão")
		return conn
	}

	log.L.WithField("driver", dbConfig.Driver).Info("Conexão com o banco estabelecida com sucesso")
	return conn
}
