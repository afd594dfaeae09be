package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jesses-code-adventures/facturier/internal/utils"
)

const (
	pageMargin   = 20.0
	pageHeight   = 297.0
	contentWidth = 170.0
	lineHeight   = 5.0
)

type rgb struct{ r, g, b int }

var (
	colorBlue  = rgb{37, 99, 235}
	colorDark  = rgb{30, 41, 59}
	colorGray  = rgb{100, 116, 139}
	colorMuted = rgb{148, 163, 184}
	colorLine  = rgb{226, 232, 240}
	colorPanel = rgb{248, 250, 252}
	colorHead  = rgb{241, 245, 249}
)

// FileName is the name a rendered PDF is saved under.
func FileName(m Model) string {
	name := utils.SanitizeFileName(m.Number)
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (p *pdfWriter) text(c rgb) {
	p.pdf.SetTextColor(c.r, c.g, c.b)
}

func (p *pdfWriter) line(w float64, text, align string) {
	p.pdf.CellFormat(w, lineHeight, p.tr(text), "", 2, align, false, 0, "")
}

// PDF renders m as an A4 document.
func PDF(w io.Writer, m Model) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(m.Label+" "+m.Number, true)
	pdf.SetCreator("facturier", true)
	pdf.AddPage()

	// the core fonts are cp1252, which covers French accents and the euro sign
	p := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	top := pdf.GetY()
	p.header(m, top)
	p.meta(m, top)
	p.client(m)
	p.items(m)
	p.totals(m)
	p.notes(m)
	p.payment(m)
	p.legal(m)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf.Output(w)
}

func (p *pdfWriter) header(m Model, top float64) {
	pdf := p.pdf
	pdf.SetXY(pageMargin, top)

	if m.Settings.Logo != nil {
		p.logo(*m.Settings.Logo)
	}

	pdf.SetFont("Helvetica", "B", 13)
	p.text(colorDark)
	p.line(100, m.Settings.CompanyName, "L")

	pdf.SetFont("Helvetica", "", 9)
	p.text(colorGray)
	for _, l := range m.CompanyLines() {
		p.line(100, l, "L")
	}
	if contact := m.CompanyContact(); contact != "" {
		p.line(100, contact, "L")
	}
	if ids := m.CompanyIDs(); ids != "" {
		pdf.SetFont("Helvetica", "", 8)
		p.text(colorMuted)
		p.line(100, ids, "L")
	}
}

// logo draws an embedded data URL image. A logo that cannot be decoded is left out.
func (p *pdfWriter) logo(dataURL string) {
	var imageType string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png;base64,"):
		imageType = "PNG"
	case strings.HasPrefix(dataURL, "data:image/jpeg;base64,"):
		imageType = "JPG"
	default:
		return
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[strings.Index(dataURL, ",")+1:])
	if err != nil {
		return
	}

	pdf := p.pdf
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(raw))
	if !pdf.Ok() {
		pdf.ClearError()
		return
	}
	y := pdf.GetY()
	pdf.ImageOptions("logo", pageMargin, y, 0, 14, false, opts, 0, "")
	pdf.SetXY(pageMargin, y+16)
}

func (p *pdfWriter) meta(m Model, top float64) {
	pdf := p.pdf
	bottom := pdf.GetY()
	x := pageMargin + contentWidth - 65
	pdf.SetXY(x, top)

	pdf.SetFont("Helvetica", "B", 20)
	p.text(colorBlue)
	pdf.CellFormat(65, 9, p.tr(m.Label), "", 2, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	p.text(colorDark)
	pdf.CellFormat(65, 7, p.tr("N° "+m.Number), "", 2, "R", false, 0, "")

	if m.Title != "" {
		pdf.SetFont("Helvetica", "I", 9)
		p.text(rgb{71, 85, 105})
		p.line(65, m.Title, "R")
	}

	pdf.SetFont("Helvetica", "", 9)
	p.text(colorGray)
	p.line(65, "Date : "+FormatDate(m.Date), "R")
	if m.DueDate != "" {
		p.line(65, "Échéance : "+FormatDate(m.DueDate), "R")
	}

	if pdf.GetY() < bottom {
		pdf.SetY(bottom)
	}
	pdf.SetX(pageMargin)
	pdf.Ln(10)
}

func (p *pdfWriter) client(m Model) {
	pdf := p.pdf
	const width = 85.0
	x := pageMargin + contentWidth - width

	rows := 2 + len(m.ClientLines())
	if m.Client.Siret != "" {
		rows++
	}
	height := float64(rows)*lineHeight + 6

	y := pdf.GetY()
	pdf.SetFillColor(colorPanel.r, colorPanel.g, colorPanel.b)
	pdf.SetDrawColor(colorLine.r, colorLine.g, colorLine.b)
	pdf.Rect(x, y, width, height, "FD")

	pdf.SetXY(x+4, y+3)
	pdf.SetFont("Helvetica", "B", 8)
	p.text(colorMuted)
	p.line(width-8, "DESTINATAIRE", "L")

	pdf.SetFont("Helvetica", "B", 12)
	p.text(colorDark)
	p.line(width-8, m.Client.Name, "L")

	pdf.SetFont("Helvetica", "", 9)
	p.text(rgb{71, 85, 105})
	for _, l := range m.ClientLines() {
		p.line(width-8, l, "L")
	}
	if m.Client.Siret != "" {
		pdf.SetFont("Helvetica", "", 8)
		p.text(colorMuted)
		p.line(width-8, "SIRET: "+m.Client.Siret, "L")
	}

	pdf.SetXY(pageMargin, y+height+10)
}

type column struct {
	title string
	width float64
	align string
}

func (p *pdfWriter) columns(m Model) []column {
	if m.TvaExempt() {
		return []column{
			{"Description", 95, "L"},
			{"Qté", 15, "C"},
			{m.UnitPriceLabel(), 30, "R"},
			{"Total", 30, "R"},
		}
	}
	return []column{
		{"Description", 80, "L"},
		{"Qté", 15, "C"},
		{m.UnitPriceLabel(), 27, "R"},
		{"TVA", 18, "C"},
		{"Total", 30, "R"},
	}
}

func (p *pdfWriter) items(m Model) {
	pdf := p.pdf
	cols := p.columns(m)

	pdf.SetFont("Helvetica", "B", 8)
	p.text(rgb{71, 85, 105})
	pdf.SetFillColor(colorHead.r, colorHead.g, colorHead.b)
	pdf.SetDrawColor(203, 213, 225)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 8, p.tr(strings.ToUpper(c.title)), "B", ln, c.align, true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	p.text(colorDark)
	pdf.SetDrawColor(colorLine.r, colorLine.g, colorLine.b)
	descWidth := cols[0].width

	for _, line := range m.Lines {
		wrapped := pdf.SplitLines([]byte(p.tr(line.Description)), descWidth-2)
		rowHeight := float64(len(wrapped))*lineHeight + 3
		if rowHeight < 8 {
			rowHeight = 8
		}
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
		}

		x, y := pdf.GetXY()
		for i, text := range wrapped {
			pdf.SetXY(x+1, y+1.5+float64(i)*lineHeight)
			pdf.Cell(descWidth-2, lineHeight, string(text))
		}
		pdf.SetXY(x+descWidth, y)

		values := []string{FormatNumber(line.Quantity), FormatCurrency(line.UnitPrice)}
		if !m.TvaExempt() {
			values = append(values, FormatRate(line.TvaRate))
		}
		values = append(values, FormatCurrency(line.Total))
		for i, v := range values {
			c := cols[i+1]
			pdf.CellFormat(c.width, rowHeight, p.tr(v), "", 0, c.align, false, 0, "")
		}
		pdf.Line(x, y+rowHeight, x+contentWidth, y+rowHeight)
		pdf.SetXY(pageMargin, y+rowHeight)
	}
	pdf.Ln(6)
}

func (p *pdfWriter) totals(m Model) {
	pdf := p.pdf
	x := pageMargin + contentWidth - 80

	if pdf.GetY()+totalsHeight(m) > pageHeight-pageMargin {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "", 9)
	if !m.TvaExempt() {
		pdf.SetX(x)
		p.text(colorGray)
		pdf.CellFormat(50, 6, p.tr("Total HT"), "", 0, "L", false, 0, "")
		p.text(colorDark)
		pdf.CellFormat(30, 6, p.tr(FormatCurrency(m.Totals.TotalHT)), "", 1, "R", false, 0, "")
		for _, row := range m.Breakdown() {
			pdf.SetX(x)
			p.text(colorGray)
			label := fmt.Sprintf("TVA %s (sur %s)", FormatRate(row.Rate), FormatCurrency(row.Base))
			pdf.CellFormat(50, 6, p.tr(label), "", 0, "L", false, 0, "")
			p.text(colorDark)
			pdf.CellFormat(30, 6, p.tr(FormatCurrency(row.Tva)), "", 1, "R", false, 0, "")
		}
	}

	y := pdf.GetY() + 1
	pdf.SetDrawColor(colorBlue.r, colorBlue.g, colorBlue.b)
	pdf.SetLineWidth(0.6)
	pdf.Line(x, y, x+80, y)
	pdf.SetLineWidth(0.2)
	pdf.SetXY(x, y+1)

	pdf.SetFont("Helvetica", "B", 13)
	p.text(colorDark)
	pdf.CellFormat(40, 9, p.tr(m.TotalLabel()), "", 0, "L", false, 0, "")
	p.text(colorBlue)
	pdf.CellFormat(40, 9, p.tr(FormatCurrency(m.Totals.TotalTTC)), "", 1, "R", false, 0, "")
	pdf.SetX(pageMargin)
	pdf.Ln(6)
}

// totalsHeight is the height drawn by totals, so the block never splits across pages.
func totalsHeight(m Model) float64 {
	height := 2.0 + 9
	if !m.TvaExempt() {
		height += float64(1+len(m.Breakdown())) * 6
	}
	return height
}

func (p *pdfWriter) notes(m Model) {
	if m.Notes == "" {
		return
	}
	pdf := p.pdf
	pdf.SetFont("Helvetica", "B", 9)
	p.text(rgb{51, 65, 85})
	p.line(contentWidth, "Notes", "L")
	pdf.SetFont("Helvetica", "", 9)
	p.text(rgb{71, 85, 105})
	pdf.MultiCell(contentWidth, lineHeight, p.tr(m.Notes), "", "L", false)
	pdf.Ln(4)
}

func (p *pdfWriter) payment(m Model) {
	if !m.HasPayment() {
		return
	}
	pdf := p.pdf

	var rows []string
	if m.Settings.DefaultPaymentTerms != "" {
		rows = append(rows, "Mode : "+m.Settings.DefaultPaymentTerms)
	}
	if m.DueDate != "" {
		rows = append(rows, "Échéance : "+FormatDate(m.DueDate))
	}
	if m.Settings.Bank != "" {
		rows = append(rows, "Banque : "+m.Settings.Bank)
	}
	if m.Settings.Iban != "" {
		rows = append(rows, "IBAN : "+m.Settings.Iban)
	}
	if m.Settings.Bic != "" {
		rows = append(rows, "BIC : "+m.Settings.Bic)
	}

	height := float64(len(rows)+1)*lineHeight + 6
	if pdf.GetY()+height > pageHeight-pageMargin {
		pdf.AddPage()
	}
	y := pdf.GetY()
	pdf.SetFillColor(colorPanel.r, colorPanel.g, colorPanel.b)
	pdf.SetDrawColor(colorLine.r, colorLine.g, colorLine.b)
	pdf.Rect(pageMargin, y, contentWidth, height, "FD")

	pdf.SetXY(pageMargin+4, y+3)
	pdf.SetFont("Helvetica", "B", 9)
	p.text(rgb{51, 65, 85})
	p.line(contentWidth-8, "MODALITÉS DE PAIEMENT", "L")
	pdf.SetFont("Helvetica", "", 9)
	p.text(rgb{71, 85, 105})
	for _, r := range rows {
		p.line(contentWidth-8, r, "L")
	}
	pdf.SetXY(pageMargin, y+height+6)
}

func (p *pdfWriter) legal(m Model) {
	lines := m.LegalLines()
	if len(lines) == 0 {
		return
	}
	pdf := p.pdf
	y := pdf.GetY()
	pdf.SetDrawColor(colorLine.r, colorLine.g, colorLine.b)
	pdf.Line(pageMargin, y, pageMargin+contentWidth, y)
	pdf.SetY(y + 3)

	if m.TvaExempt() {
		pdf.SetFont("Helvetica", "B", 9)
		p.text(rgb{71, 85, 105})
		p.line(contentWidth, TvaExemptMention, "L")
	}
	if m.Settings.LegalMentions != "" {
		pdf.SetFont("Helvetica", "", 8)
		p.text(colorMuted)
		pdf.MultiCell(contentWidth, 4, p.tr(m.Settings.LegalMentions), "", "L", false)
	}
}
