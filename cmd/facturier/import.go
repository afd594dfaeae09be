package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/service"
)

func newImportCmd(facturierService *service.FacturierService) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore a JSON backup",
		Long: `Replace all settings, clients, documents and counters with the content of a backup
made by "facturier export". A file that is not a valid backup leaves everything unchanged.

WARNING: current data is overwritten!`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup: %w", err)
			}
			defer file.Close()

			if !confirm("This replaces all current data. Continue?", yes) {
				fmt.Println("Import cancelled.")
				return nil
			}

			err = facturierService.Import(cmd.Context(), file)
			if !storageOnly(err) {
				return err
			}
			if err != nil {
				warn(err)
			}

			fmt.Printf("Imported %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
