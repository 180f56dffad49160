package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

var flagQuiet bool

var rootCmd = &cobra.Command{
	Use:          "dashctl",
	Short:        "Ferramentas do painel de crescimento",
	Long:         "Relatório no terminal, exportação para Excel, carga de dados de teste e migrações do painel de crescimento.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Mostra apenas erros nos logs")
}

// loadConfig é o caminho comum de configuração dos comandos; os logs vão para stderr para não poluir a saída
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.App.LogLevel
	if flagQuiet {
		level = "error"
	}

	log.SetOutput(os.Stderr)
	if err := log.Setup(level, cfg.App.Env); err != nil {
		log.L.WithError(err).Warn("Nível de log inválido, usando info")
	}

	return cfg, nil
}

func openDatabase(cfg *config.Config) (*database.Connection, error) {
	return database.NewConnection(cfg.Database)
}
