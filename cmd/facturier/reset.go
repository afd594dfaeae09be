package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/service"
)

func newResetCmd(facturierService *service.FacturierService) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and start over",
		Long: `Delete all settings, clients, documents and counters. Numbering restarts at 001.

WARNING: This operation cannot be undone! Run "facturier export" first to keep a backup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Println("WARNING: This will permanently delete all documents, clients and settings!")
			}
			if !confirm("Are you sure you want to continue?", yes) {
				fmt.Println("Reset cancelled.")
				return nil
			}

			if err := facturierService.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All data deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
