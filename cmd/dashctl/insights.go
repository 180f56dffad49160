package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/growth-dashboard-api/internal/cli"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/insighting"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Gera a análise em texto dos dados do painel",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snapshot := buildSnapshot(cmd, cfg)

	narrator := insighting.NewService(gemini.New(cfg, geminiclient.NewClient()), cfg)

	narrative, err := narrator.Narrate(cmd.Context(), snapshot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle("Insights de Negócio", narrative.Model))
	fmt.Fprintln(out)
	fmt.Fprintln(out, narrative.Text)

	return nil
}
