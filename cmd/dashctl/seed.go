package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/seeding"
)

var (
	flagSeedRows int
	flagSeedSeed int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apaga e recria os dados de teste",
	Long:  "Remove o conteúdo das sete tabelas e insere dados sintéticos numa única transação.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&flagSeedRows, "rows", 0, "Linhas por tabela (padrão SEED_ROWS)")
	seedCmd.Flags().Int64Var(&flagSeedSeed, "seed", 0, "Semente do gerador (0 usa o relógio)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("rows") {
		cfg.Seed.Rows = flagSeedRows
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.RandomSeed = flagSeedSeed
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	summary, err := seeding.NewService(repository.NewSeedRepository(conn), cfg).Seed(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Dados de teste inseridos: %d linhas em %s (semente %d)\n",
		summary.RowsPerTable, strings.Join(summary.Tables, ", "), summary.RandomSeed)

	return nil
}
