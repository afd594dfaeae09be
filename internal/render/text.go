package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Text writes a plain terminal preview of m.
func Text(w io.Writer, m Model) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s N° %s\n", m.Label, m.Number)
	if m.Title != "" {
		fmt.Fprintf(&b, "%s\n", m.Title)
	}
	fmt.Fprintf(&b, "Date : %s\n", FormatDate(m.Date))
	if m.DueDate != "" {
		fmt.Fprintf(&b, "Échéance : %s\n", FormatDate(m.DueDate))
	}
	b.WriteString("\n")

	if m.Settings.CompanyName != "" {
		fmt.Fprintf(&b, "%s\n", m.Settings.CompanyName)
	}
	for _, line := range m.CompanyLines() {
		fmt.Fprintf(&b, "%s\n", line)
	}
	if contact := m.CompanyContact(); contact != "" {
		fmt.Fprintf(&b, "%s\n", contact)
	}
	if ids := m.CompanyIDs(); ids != "" {
		fmt.Fprintf(&b, "%s\n", ids)
	}
	b.WriteString("\n")

	b.WriteString("Destinataire\n")
	fmt.Fprintf(&b, "  %s\n", m.Client.Name)
	for _, line := range m.ClientLines() {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if m.Client.Siret != "" {
		fmt.Fprintf(&b, "  SIRET: %s\n", m.Client.Siret)
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	if m.TvaExempt() {
		fmt.Fprintf(tw, "Description\tQté\t%s\tTotal\t\n", m.UnitPriceLabel())
	} else {
		fmt.Fprintf(tw, "Description\tQté\t%s\tTVA\tTotal\t\n", m.UnitPriceLabel())
	}
	for _, line := range m.Lines {
		if m.TvaExempt() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
				line.Description, FormatNumber(line.Quantity), FormatCurrency(line.UnitPrice), FormatCurrency(line.Total))
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
				line.Description, FormatNumber(line.Quantity), FormatCurrency(line.UnitPrice), FormatRate(line.TvaRate), FormatCurrency(line.Total))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	b.WriteString("\n")

	if !m.TvaExempt() {
		fmt.Fprintf(&b, "Total HT: %s\n", FormatCurrency(m.Totals.TotalHT))
		for _, row := range m.Breakdown() {
			fmt.Fprintf(&b, "TVA %s (sur %s): %s\n", FormatRate(row.Rate), FormatCurrency(row.Base), FormatCurrency(row.Tva))
		}
	}
	fmt.Fprintf(&b, "%s: %s\n", m.TotalLabel(), FormatCurrency(m.Totals.TotalTTC))

	if m.Notes != "" {
		fmt.Fprintf(&b, "\nNotes\n%s\n", m.Notes)
	}

	if m.HasPayment() {
		b.WriteString("\nModalités de paiement\n")
		if m.Settings.DefaultPaymentTerms != "" {
			fmt.Fprintf(&b, "  Mode : %s\n", m.Settings.DefaultPaymentTerms)
		}
		if m.DueDate != "" {
			fmt.Fprintf(&b, "  Échéance : %s\n", FormatDate(m.DueDate))
		}
		if m.Settings.Bank != "" {
			fmt.Fprintf(&b, "  Banque : %s\n", m.Settings.Bank)
		}
		if m.Settings.Iban != "" {
			fmt.Fprintf(&b, "  IBAN : %s\n", m.Settings.Iban)
		}
		if m.Settings.Bic != "" {
			fmt.Fprintf(&b, "  BIC : %s\n", m.Settings.Bic)
		}
	}

	if legal := m.LegalLines(); len(legal) > 0 {
		b.WriteString("\n")
		for _, line := range legal {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
