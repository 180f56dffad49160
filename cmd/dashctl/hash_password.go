package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/growth-dashboard-api/internal/usecases/authenticating"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <senha>",
	Short: "Gera o hash bcrypt para o arquivo de segredos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := authenticating.HashPassword(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
