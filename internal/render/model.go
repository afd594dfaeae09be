package render

import (
	"strings"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/totals"
)

// TvaExemptMention is printed on documents of businesses outside the VAT regime.
const TvaExemptMention = "TVA non applicable, art. 293 B du CGI"

// Model is everything a renderer needs, copied out of a saved document. Renderers print
// the stored totals and never compute their own.
type Model struct {
	Type     models.DocumentType
	Label    string
	Number   string
	Title    string
	Date     string
	DueDate  string
	Client   models.ClientInfo
	Lines    []Line
	Notes    string
	Totals   models.Totals
	Settings models.Settings
}

type Line struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	TvaRate     float64
	Total       float64
}

// NewModel snapshots doc. Later changes to doc or to the live settings do not reach the model.
func NewModel(doc *models.Document) Model {
	src := doc.Copy()

	lines := make([]Line, 0, len(src.Items))
	for _, item := range src.Items {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		lines = append(lines, Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TvaRate:     item.TvaRate,
			Total:       totals.LineTotal(item),
		})
	}

	return Model{
		Type:     src.Type,
		Label:    src.Type.Label(),
		Number:   src.Number,
		Title:    src.Title,
		Date:     src.Date,
		DueDate:  src.DueDate,
		Client:   src.Client,
		Lines:    lines,
		Notes:    src.Notes,
		Totals:   src.Totals,
		Settings: src.Settings,
	}
}

func (m Model) TvaExempt() bool {
	return m.Settings.TvaExempt
}

func (m Model) TotalLabel() string {
	if m.TvaExempt() {
		return "Total"
	}
	return "Total TTC"
}

func (m Model) UnitPriceLabel() string {
	if m.TvaExempt() {
		return "Prix unit."
	}
	return "PU HT"
}

// Breakdown returns the TVA rows to print, none when exempt.
func (m Model) Breakdown() []models.TaxLine {
	if m.TvaExempt() {
		return nil
	}
	return m.Totals.TvaBreakdown
}

func (m Model) CompanyLines() []string {
	return nonEmpty(m.Settings.Address, joinNonEmpty(" ", m.Settings.PostalCode, m.Settings.City))
}

func (m Model) CompanyContact() string {
	return joinNonEmpty(" - ", m.Settings.Phone, m.Settings.Email)
}

func (m Model) CompanyIDs() string {
	var siret, tva string
	if m.Settings.Siret != "" {
		siret = "SIRET: " + m.Settings.Siret
	}
	if m.Settings.TvaNumber != "" {
		tva = "TVA: " + m.Settings.TvaNumber
	}
	return joinNonEmpty(" - ", siret, tva)
}

func (m Model) ClientLines() []string {
	return nonEmpty(m.Client.Address, joinNonEmpty(" ", m.Client.PostalCode, m.Client.City))
}

// HasPayment reports whether the payment block has anything to show.
func (m Model) HasPayment() bool {
	return m.Settings.DefaultPaymentTerms != "" || m.Settings.Iban != ""
}

// LegalLines lists the footer mentions, the VAT exemption first.
func (m Model) LegalLines() []string {
	var out []string
	if m.TvaExempt() {
		out = append(out, TvaExemptMention)
	}
	if m.Settings.LegalMentions != "" {
		out = append(out, m.Settings.LegalMentions)
	}
	return out
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinNonEmpty(sep string, values ...string) string {
	return strings.Join(nonEmpty(values...), sep)
}
