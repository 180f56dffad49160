package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria o esquema de clientes, contratos e pagamentos",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := database.RunMigrations(cfg.Database); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Migrações aplicadas (%s)\n", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
