package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/internal/cli"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/internal/presentation"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

var flagReportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Mostra o painel no terminal",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportJSON, "json", false, "Imprime os widgets em JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snapshot := buildSnapshot(cmd, cfg)

	view := presentation.BuildDashboardView(snapshot, cfg.Currency.Format())

	if flagReportJSON {
		out, err := utils.PrettyJson(view)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.RenderDashboard(view))

	return nil
}

// buildSnapshot nunca falha: banco inacessível vira um snapshot indisponível com aviso
func buildSnapshot(cmd *cobra.Command, cfg *config.Config) domain.DashboardSnapshot {
	var paymentRepo repository.PaymentRepository

	conn, err := openDatabase(cfg)
	if err != nil {
		log.L.WithError(err).Error("Erro ao abrir conexão com o banco")
	} else {
		defer conn.Close()
		paymentRepo = repository.NewPaymentRepository(conn)
	}

	return dashboard.NewService(paymentRepo, cfg).BuildSnapshot(cmd.Context())
}
