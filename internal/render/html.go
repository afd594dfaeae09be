package render

import (
	"html/template"
	"io"
	"strings"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8" />
  <title>{{.Label}} {{.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
      color: #1e293b;
      background: #ffffff;
    }
    .document { max-width: 780px; margin: 0 auto; }
    .header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 32px; }
    .header img { max-height: 50px; }
    .company { font-size: 16px; font-weight: 700; }
    .muted { font-size: 12px; color: #64748b; }
    .faint { font-size: 11px; color: #94a3b8; }
    .meta { text-align: right; }
    .label { font-size: 22px; font-weight: 700; color: #2563eb; letter-spacing: 0.02em; }
    .number { font-size: 14px; font-weight: 600; margin-top: 4px; }
    .title { font-size: 12px; font-style: italic; color: #475569; margin-top: 3px; }
    .client {
      background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 6px;
      padding: 14px 16px; margin: 0 0 28px auto; max-width: 320px;
    }
    .client .caption { font-size: 11px; font-weight: 600; color: #94a3b8; text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 6px; }
    .client .name { font-size: 14px; font-weight: 600; }
    table.items { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    table.items th {
      padding: 10px; font-size: 11px; font-weight: 600; color: #475569; text-transform: uppercase;
      letter-spacing: 0.04em; border-bottom: 2px solid #cbd5e1; background: #f1f5f9; text-align: left;
    }
    table.items td { padding: 8px 10px; border-bottom: 1px solid #e2e8f0; font-size: 13px; }
    .center { text-align: center !important; }
    .right { text-align: right !important; }
    .totals { display: flex; justify-content: flex-end; }
    .totals table { border-collapse: collapse; min-width: 260px; }
    .totals td { padding: 5px 10px; font-size: 13px; }
    .totals tr.grand td { padding: 10px; font-size: 15px; font-weight: 700; border-top: 2px solid #2563eb; }
    .totals tr.grand td.right { color: #2563eb; }
    .notes { margin-top: 16px; font-size: 12px; color: #475569; white-space: pre-wrap; }
    .payment { margin-top: 24px; padding: 14px 16px; background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 6px; font-size: 12px; color: #475569; }
    .caption { font-size: 12px; font-weight: 600; color: #334155; margin-bottom: 8px; text-transform: uppercase; letter-spacing: 0.03em; }
    .legal { margin-top: 24px; padding-top: 12px; border-top: 1px solid #e2e8f0; font-size: 10px; color: #94a3b8; line-height: 1.5; }
    .legal .exempt { font-size: 11px; font-weight: 600; color: #475569; margin-bottom: 4px; }
  </style>
</head>
<body>
  <div class="document">
    <div class="header">
      <div>
        {{with .Logo}}<img src="{{.}}" alt="Logo" />{{end}}
        <div class="company">{{.Settings.CompanyName}}</div>
        {{range .CompanyLines}}<div class="muted">{{.}}</div>{{end}}
        {{with .CompanyContact}}<div class="muted">{{.}}</div>{{end}}
        {{with .CompanyIDs}}<div class="faint">{{.}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">{{.Label}}</div>
        <div class="number">N° {{.Number}}</div>
        {{with .Title}}<div class="title">{{.}}</div>{{end}}
        <div class="muted">Date : {{formatDate .Date}}</div>
        {{with .DueDate}}<div class="muted">Échéance : {{formatDate .}}</div>{{end}}
      </div>
    </div>

    <div class="client">
      <div class="caption">Destinataire</div>
      <div class="name">{{.Client.Name}}</div>
      {{range .ClientLines}}<div class="muted">{{.}}</div>{{end}}
      {{with .Client.Siret}}<div class="faint">SIRET: {{.}}</div>{{end}}
    </div>

    <table class="items">
      <thead>
        <tr>
          <th>Description</th>
          <th class="center">Qté</th>
          <th class="right">{{.UnitPriceLabel}}</th>
          {{if not .TvaExempt}}<th class="center">TVA</th>{{end}}
          <th class="right">Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.Description}}</td>
          <td class="center">{{formatNumber .Quantity}}</td>
          <td class="right">{{formatCurrency .UnitPrice}}</td>
          {{if not $.TvaExempt}}<td class="center">{{formatRate .TvaRate}}</td>{{end}}
          <td class="right">{{formatCurrency .Total}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <table>
        {{if not .TvaExempt}}
        <tr><td class="muted">Total HT</td><td class="right">{{formatCurrency .Totals.TotalHT}}</td></tr>
        {{end}}
        {{range .Breakdown}}
        <tr><td class="muted">TVA {{formatRate .Rate}} (sur {{formatCurrency .Base}})</td><td class="right">{{formatCurrency .Tva}}</td></tr>
        {{end}}
        <tr class="grand"><td>{{.TotalLabel}}</td><td class="right">{{formatCurrency .Totals.TotalTTC}}</td></tr>
      </table>
    </div>

    {{with .Notes}}
    <div class="notes"><div class="caption">Notes</div>{{.}}</div>
    {{end}}

    {{if .HasPayment}}
    <div class="payment">
      <div class="caption">Modalités de paiement</div>
      {{with .Settings.DefaultPaymentTerms}}<div>Mode : {{.}}</div>{{end}}
      {{with .DueDate}}<div>Échéance : {{formatDate .}}</div>{{end}}
      {{with .Settings.Bank}}<div>Banque : {{.}}</div>{{end}}
      {{with .Settings.Iban}}<div>IBAN : {{.}}</div>{{end}}
      {{with .Settings.Bic}}<div>BIC : {{.}}</div>{{end}}
    </div>
    {{end}}

    {{if or .TvaExempt .Settings.LegalMentions}}
    <div class="legal">
      {{if .TvaExempt}}<div class="exempt">{{exemptMention}}</div>{{end}}
      {{with .Settings.LegalMentions}}<div>{{.}}</div>{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

var documentTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"formatCurrency": FormatCurrency,
	"formatDate":     FormatDate,
	"formatNumber":   FormatNumber,
	"formatRate":     FormatRate,
	"exemptMention":  func() string { return TvaExemptMention },
}).Parse(documentHTMLTemplate))

type htmlView struct {
	Model
	Logo template.URL
}

// HTML writes m as a standalone page.
func HTML(w io.Writer, m Model) error {
	view := htmlView{Model: m}
	if m.Settings.Logo != nil && isImageDataURL(*m.Settings.Logo) {
		// data URLs are rejected by the URL sanitizer unless marked safe
		view.Logo = template.URL(*m.Settings.Logo)
	}
	return documentTemplate.Execute(w, view)
}

func isImageDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/png;base64,") || strings.HasPrefix(s, "data:image/jpeg;base64,")
}
