package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/config"
	"github.com/jesses-code-adventures/facturier/internal/service"
)

func newRootCmd(facturierService *service.FacturierService, cfg *config.Config, log zerolog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "facturier",
		Short: "Invoices and quotes for French freelancers",
		Long: `Create, number and render invoices (factures) and quotes (devis) from the terminal.
Everything is kept in a single local database; export it regularly to keep a backup.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		newNewCmd(facturierService),
		newEditCmd(facturierService),
		newListCmd(facturierService),
		newShowCmd(facturierService),
		newDuplicateCmd(facturierService),
		newStatusCmd(facturierService),
		newDeleteCmd(facturierService),
		newPDFCmd(facturierService, cfg),
		newPreviewCmd(facturierService, log),
		newClientsCmd(facturierService),
		newSettingsCmd(facturierService),
		newExportCmd(facturierService, cfg),
		newImportCmd(facturierService),
		newResetCmd(facturierService),
		newConfigCmd(cfg),
	)

	return rootCmd
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg.Dump()
		},
	}
}
