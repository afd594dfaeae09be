package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/render"
	"github.com/jesses-code-adventures/facturier/internal/service"
)

// documentFlags are shared by new and edit. On edit only the flags given are applied.
type documentFlags struct {
	kind     string
	client   string
	clientID string
	title    string
	date     string
	due      string
	notes    string
	status   string
	items    []string
}

func (f *documentFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(models.DocumentTypeInvoice), "Document type (invoice or quote)")
	cmd.Flags().StringVarP(&f.client, "client", "c", "", "Client name; a saved client with that name is used when it exists")
	cmd.Flags().StringVar(&f.clientID, "client-id", "", "ID of a saved client")
	cmd.Flags().StringVar(&f.title, "title", "", "Optional title")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Document date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due or validity date (YYYY-MM-DD, default: date + payment delay)")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "Notes printed on the document")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Status (draft, sent or paid)")
	cmd.Flags().StringArrayVarP(&f.items, "item", "i", nil, `Line as "description|quantity|price|tva", repeatable`)
}

func (f *documentFlags) apply(ctx context.Context, cmd *cobra.Command, svc *service.FacturierService, draft *service.Draft) error {
	changed := cmd.Flags().Changed
	settings := svc.Settings(ctx)

	if changed("type") && models.DocumentType(f.kind) != draft.Type {
		if err := svc.ChangeDraftType(ctx, draft, models.DocumentType(f.kind)); err != nil {
			return err
		}
	}

	switch {
	case changed("client-id"):
		client, err := svc.GetClient(ctx, f.clientID)
		if err != nil {
			return fmt.Errorf("client %s: %w", f.clientID, err)
		}
		draft.UseClient(client)
	case changed("client"):
		client, err := svc.FindClientByName(ctx, f.client)
		switch {
		case err == nil:
			draft.UseClient(client)
		case errors.Is(err, service.ErrClientNotFound):
			draft.Client = models.ClientInfo{Name: f.client}
			draft.ClientID = nil
		default:
			return err
		}
	}

	if changed("date") {
		if err := draft.SetDate(f.date, settings.DefaultPaymentDelay); err != nil {
			return err
		}
	}
	if changed("due") {
		draft.DueDate = f.due
	}
	if changed("title") {
		draft.Title = f.title
	}
	if changed("notes") {
		draft.Notes = f.notes
	}
	if changed("item") {
		items, err := parseItems(f.items, settings.DefaultTva)
		if err != nil {
			return err
		}
		draft.Items = items
	}
	return nil
}

func newNewCmd(facturierService *service.FacturierService) *cobra.Command {
	var flags documentFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an invoice or a quote",
		Long: `Create a document with the next number of its type. The number is only taken once
the document is valid. Lines are given with --item, for example: --item "Développement site|3|450|20".`,
		Example: `  facturier new -c "Acme SARL" -i "Conseil|2|50" -i "Hébergement|1|30|10"
  facturier new -t quote -c "Acme SARL" -i "Audit|1|900" --title "Audit sécurité"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			draft, err := facturierService.BlankDraft(ctx, models.DocumentType(flags.kind))
			if err != nil {
				return err
			}

			if err := flags.apply(ctx, cmd, facturierService, draft); err != nil {
				return err
			}

			doc, err := facturierService.SaveDraft(ctx, draft, models.Status(flags.status))
			if doc == nil {
				return err
			}
			if err != nil {
				warn(err)
			}

			fmt.Printf("Created %s %s for %s (%s)\n", doc.Type, doc.Number, doc.Client.Name, render.FormatCurrency(doc.Totals.TotalTTC))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newEditCmd(facturierService *service.FacturierService) *cobra.Command {
	var flags documentFlags

	cmd := &cobra.Command{
		Use:   "edit <id-or-number>",
		Short: "Edit a saved document",
		Long: `Change a saved document. Only the flags given are applied; --item replaces every line.
The number and creation date never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := facturierService.ResolveDocument(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			draft, err := facturierService.EditDraft(ctx, doc.ID)
			if err != nil {
				return err
			}

			if err := flags.apply(ctx, cmd, facturierService, draft); err != nil {
				return err
			}

			updated, err := facturierService.SaveDraft(ctx, draft, models.Status(flags.status))
			if updated == nil {
				return err
			}
			if err != nil {
				warn(err)
			}

			fmt.Printf("Updated %s %s (%s)\n", updated.Type, updated.Number, render.FormatCurrency(updated.Totals.TotalTTC))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newListCmd(facturierService *service.FacturierService) *cobra.Command {
	var kind, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			docs := facturierService.ListDocuments(ctx, service.DocumentFilter{
				Type:   models.DocumentType(kind),
				Search: search,
			})
			if len(docs) == 0 {
				fmt.Println("No documents found.")
				return nil
			}

			for _, doc := range docs {
				fmt.Printf("%s | %s | %s | %s | %s | %s\n",
					doc.Number,
					doc.Type.Label(),
					render.FormatDate(doc.Date),
					doc.Client.Name,
					render.FormatCurrency(doc.Totals.TotalTTC),
					doc.Status)
				if doc.Title != "" {
					fmt.Printf("- %s\n", doc.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "Only invoice or quote documents")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Search in number, title and client name")
	return cmd
}

func newShowCmd(facturierService *service.FacturierService) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-or-number>",
		Short: "Print a document as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := facturierService.ResolveDocument(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return render.Text(os.Stdout, render.NewModel(doc))
		},
	}
}

func newDuplicateCmd(facturierService *service.FacturierService) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "duplicate <id-or-number>",
		Short: "Start a new document from an existing one",
		Long: `Copy the lines, client, title and notes of a document into a new one dated today,
with the next number of its type. Without --save the copy is only printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			src, err := facturierService.ResolveDocument(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			draft, err := facturierService.Duplicate(ctx, src.ID)
			if draft == nil {
				return err
			}
			if err != nil {
				warn(err)
			}

			if !save {
				preview := &models.Document{
					Type:     draft.Type,
					Number:   draft.Number,
					Title:    draft.Title,
					Date:     draft.Date,
					DueDate:  draft.DueDate,
					Client:   draft.Client,
					Items:    draft.Items,
					Notes:    draft.Notes,
					Status:   models.StatusDraft,
					Totals:   draft.Totals(),
					Settings: facturierService.Settings(ctx),
				}
				if err := render.Text(os.Stdout, render.NewModel(preview)); err != nil {
					return err
				}
				fmt.Println("Not saved; run again with --save to keep the copy.")
				return nil
			}

			doc, err := facturierService.SaveDraft(ctx, draft, models.StatusDraft)
			if doc == nil {
				return err
			}
			if err != nil {
				warn(err)
			}
			fmt.Printf("Duplicated %s as %s\n", src.Number, doc.Number)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the copy as a draft")
	return cmd
}

func newStatusCmd(facturierService *service.FacturierService) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id-or-number> <draft|sent|paid>",
		Short:     "Change the status of a document",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.StatusDraft), string(models.StatusSent), string(models.StatusPaid)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := facturierService.ResolveDocument(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := facturierService.SetStatus(ctx, doc.ID, models.Status(args[1])); err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", doc.Number, args[1])
			return nil
		},
	}
}

func newDeleteCmd(facturierService *service.FacturierService) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id-or-number>",
		Short: "Delete a document",
		Long:  "Delete a document. Its number is not reused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := facturierService.ResolveDocument(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if !confirm(fmt.Sprintf("Delete %s %s?", doc.Type.Label(), doc.Number), yes) {
				fmt.Println("Delete cancelled.")
				return nil
			}
			if err := facturierService.DeleteDocument(ctx, doc.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", doc.Number)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
