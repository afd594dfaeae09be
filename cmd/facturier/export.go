package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/config"
	"github.com/jesses-code-adventures/facturier/internal/service"
)

func newExportCmd(facturierService *service.FacturierService, cfg *config.Config) *cobra.Command {
	var output string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Back up all data as JSON, or list documents as CSV",
		Long: `Write a JSON backup of settings, clients, documents and counters that "facturier import"
can restore. The default file is facturier-backup-YYYY-MM-DD.json in OUTPUT_DIR; use -o - for stdout.
With --csv a one-row-per-document summary is written instead, to stdout by default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if output == "" && !asCSV {
				output = filepath.Join(cfg.OutputDir, service.ExportFileName(time.Now()))
			}

			file := os.Stdout
			toFile := output != "" && output != "-"
			if toFile {
				var err error
				file, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer file.Close()
			}

			if asCSV {
				if err := facturierService.ExportCSV(ctx, file); err != nil {
					return err
				}
			} else if err := facturierService.Export(ctx, file); err != nil {
				return err
			}

			if toFile {
				fmt.Printf("Exported to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Export a CSV summary of documents")
	return cmd
}
