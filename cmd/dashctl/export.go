package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/internal/cli"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/exporting"
)

var (
	flagExportTable  string
	flagExportOutput string
	flagExportToDir  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta uma tabela limpa para Excel",
	Long:  "Lê a tabela inteira, remove linhas com valores nulos e grava uma planilha xlsx.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportTable, "table", "t", "", "Tabela de origem (padrão EXPORT_TABLE)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Arquivo de saída (padrão EXPORT_OUTPUT_PATH)")
	exportCmd.Flags().BoolVar(&flagExportToDir, "to-dir", false, "Grava em EXPORT_DIR com nome único")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	service := exporting.NewService(repository.NewTableRepository(conn), cfg)

	var result *domain.ExportResult
	if flagExportToDir {
		result, err = service.ExportToDir(cmd.Context(), flagExportTable)
	} else {
		result, err = service.ExportTable(cmd.Context(), flagExportTable, flagExportOutput)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
		Title:   "Exportação concluída",
		Headers: []string{"Campo", "Valor"},
		Rows: [][]string{
			{"Tabela", result.Table},
			{"Arquivo", result.Path},
			{"Linhas lidas", humanize.Comma(int64(result.RowsRead))},
			{"Linhas exportadas", humanize.Comma(int64(result.RowsExported))},
			{"Descartadas", humanize.Comma(int64(result.RowsRead - result.RowsExported))},
		},
	}))

	return nil
}
