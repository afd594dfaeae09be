package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/service"
)

func newClientsCmd(facturierService *service.FacturierService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage saved clients",
		Long: `Saved clients pre-fill new documents. Documents keep their own copy of the client,
so changing or deleting a client never alters them.`,
	}

	cmd.AddCommand(newClientsListCmd(facturierService))
	cmd.AddCommand(newClientsSaveCmd(facturierService))
	cmd.AddCommand(newClientsDeleteCmd(facturierService))

	return cmd
}

func newClientsListCmd(facturierService *service.FacturierService) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved clients by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients := facturierService.ListClients(cmd.Context())
			if len(clients) == 0 {
				fmt.Println("No clients found.")
				return nil
			}

			for _, client := range clients {
				if !verbose {
					fmt.Printf("%s - %s\n", client.ID, client.Name)
					continue
				}
				fmt.Printf("\nClient: %s (ID: %s)\n", client.Name, client.ID)
				printField("Email", client.Email)
				printField("Address", client.Address)
				printField("City", joinNonEmpty(" ", client.PostalCode, client.City))
				printField("SIRET", client.Siret)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show address and identifiers")
	return cmd
}

func newClientsSaveCmd(facturierService *service.FacturierService) *cobra.Command {
	var info models.ClientInfo

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Add a client or update the one with the same name",
		Long:  "Save a client. Names are matched case-insensitively; an existing client is overwritten.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, created, err := facturierService.SaveClient(cmd.Context(), info)
			if client == nil {
				return err
			}
			if err != nil {
				warn(err)
			}

			verb := "Updated"
			if created {
				verb = "Saved"
			}
			fmt.Printf("%s client '%s' (ID: %s)\n", verb, client.Name, client.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&info.Name, "name", "c", "", "Client name")
	cmd.Flags().StringVar(&info.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&info.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&info.PostalCode, "postcode", "", "Postal code")
	cmd.Flags().StringVar(&info.City, "city", "", "City")
	cmd.Flags().StringVar(&info.Siret, "siret", "", "SIRET number")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newClientsDeleteCmd(facturierService *service.FacturierService) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete a saved client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := facturierService.GetClient(ctx, args[0])
			if errors.Is(err, service.ErrClientNotFound) {
				client, err = facturierService.FindClientByName(ctx, args[0])
			}
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if err := facturierService.DeleteClient(ctx, client.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted client '%s'\n", client.Name)
			return nil
		},
	}
}
