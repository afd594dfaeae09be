package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/render"
	"github.com/jesses-code-adventures/facturier/internal/service"
	"github.com/jesses-code-adventures/facturier/internal/utils"
)

func newSettingsCmd(facturierService *service.FacturierService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your business settings",
		Long: `Business details printed on every document, default payment terms, TVA and
numbering prefixes. Saved documents keep the settings they were saved with.`,
	}

	cmd.AddCommand(newSettingsShowCmd(facturierService))
	cmd.AddCommand(newSettingsSetCmd(facturierService))
	cmd.AddCommand(newSettingsLogoCmd(facturierService))

	return cmd
}

func newSettingsShowCmd(facturierService *service.FacturierService) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Run: func(cmd *cobra.Command, args []string) {
			s := facturierService.Settings(cmd.Context())

			fmt.Println("Company:")
			printField("Name", s.CompanyName)
			printField("Address", s.Address)
			printField("City", joinNonEmpty(" ", s.PostalCode, s.City))
			printField("SIRET", s.Siret)
			printField("TVA number", s.TvaNumber)
			printField("Phone", s.Phone)
			printField("Email", s.Email)
			printField("Website", s.Website)
			if s.Logo != nil {
				fmt.Println("  Logo: set")
			}

			fmt.Println("Payment:")
			printField("Bank", s.Bank)
			printField("IBAN", s.Iban)
			printField("BIC", s.Bic)
			printField("Terms", s.DefaultPaymentTerms)
			fmt.Printf("  Delay: %d days\n", s.DefaultPaymentDelay)

			fmt.Println("Tax and numbering:")
			if s.TvaExempt {
				fmt.Printf("  TVA: exempt (%s)\n", render.TvaExemptMention)
			} else {
				fmt.Printf("  Default TVA: %s\n", render.FormatRate(s.DefaultTva))
			}
			fmt.Printf("  Invoice prefix: %s\n", s.InvoicePrefix)
			fmt.Printf("  Quote prefix: %s\n", s.QuotePrefix)
			printField("Legal mentions", s.LegalMentions)
		},
	}
}

func newSettingsSetCmd(facturierService *service.FacturierService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the flags given are updated",
		Example: `  facturier settings set --company "Atelier Dupont" --siret "123 456 789 00012"
  facturier settings set --tva-exempt --delay 45`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			s := facturierService.Settings(ctx)

			for name, dst := range settingsStringFlags(&s) {
				if flags.Changed(name) {
					*dst, _ = flags.GetString(name)
				}
			}
			if flags.Changed("delay") {
				s.DefaultPaymentDelay, _ = flags.GetInt("delay")
			}
			if flags.Changed("tva") {
				raw, _ := flags.GetString("tva")
				rate, err := utils.ParseDecimal(raw)
				if err != nil {
					return fmt.Errorf("invalid --tva %q: %w", raw, err)
				}
				s.DefaultTva = rate
			}
			if flags.Changed("tva-exempt") {
				s.TvaExempt, _ = flags.GetBool("tva-exempt")
			}

			saved, err := facturierService.UpdateSettings(ctx, s)
			if !storageOnly(err) {
				return err
			}
			if err != nil {
				warn(err)
			}
			fmt.Printf("Settings saved (next invoice prefix: %s, quote prefix: %s)\n", saved.InvoicePrefix, saved.QuotePrefix)
			return nil
		},
	}

	var blank models.Settings
	for name := range settingsStringFlags(&blank) {
		cmd.Flags().String(name, "", settingsFlagUsage[name])
	}
	cmd.Flags().Int("delay", 30, "Default payment delay in days")
	cmd.Flags().String("tva", "20", "Default TVA rate in percent, 5.5 or 5,5")
	cmd.Flags().Bool("tva-exempt", false, "Not subject to TVA (art. 293 B du CGI)")
	return cmd
}

func settingsStringFlags(s *models.Settings) map[string]*string {
	return map[string]*string{
		"company":        &s.CompanyName,
		"address":        &s.Address,
		"postcode":       &s.PostalCode,
		"city":           &s.City,
		"siret":          &s.Siret,
		"tva-number":     &s.TvaNumber,
		"phone":          &s.Phone,
		"email":          &s.Email,
		"website":        &s.Website,
		"bank":           &s.Bank,
		"iban":           &s.Iban,
		"bic":            &s.Bic,
		"payment-terms":  &s.DefaultPaymentTerms,
		"invoice-prefix": &s.InvoicePrefix,
		"quote-prefix":   &s.QuotePrefix,
		"legal":          &s.LegalMentions,
	}
}

var settingsFlagUsage = map[string]string{
	"company":        "Company name",
	"address":        "Street address",
	"postcode":       "Postal code",
	"city":           "City",
	"siret":          "SIRET number",
	"tva-number":     "Intra-community TVA number",
	"phone":          "Phone number",
	"email":          "Email address",
	"website":        "Website",
	"bank":           "Bank name",
	"iban":           "IBAN",
	"bic":            "BIC",
	"payment-terms":  "Default payment terms",
	"invoice-prefix": "Invoice number prefix (blank resets to F)",
	"quote-prefix":   "Quote number prefix (blank resets to D)",
	"legal":          "Legal mentions printed at the bottom of documents",
}

func newSettingsLogoCmd(facturierService *service.FacturierService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logo",
		Short: "Set or remove the logo",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <file>",
		Short: "Use a PNG or JPEG image (500 KB max) as logo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read logo: %w", err)
			}
			err = facturierService.SetLogo(cmd.Context(), data)
			if !storageOnly(err) {
				return err
			}
			if err != nil {
				warn(err)
			}
			fmt.Printf("Logo set from %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the logo",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := facturierService.RemoveLogo(cmd.Context())
			if !storageOnly(err) {
				return err
			}
			if err != nil {
				warn(err)
			}
			fmt.Println("Logo removed.")
			return nil
		},
	})

	return cmd
}
