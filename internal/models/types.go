package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeQuote   DocumentType = "quote"
)

func (t DocumentType) Valid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeQuote
}

// Label is the title printed on rendered documents.
func (t DocumentType) Label() string {
	if t == DocumentTypeQuote {
		return "DEVIS"
	}
	return "FACTURE"
}

type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid:
		return true
	}
	return false
}

// Settings is the business configuration. Documents embed a copy taken at save time.
type Settings struct {
	CompanyName         string  `json:"companyName"`
	Address             string  `json:"address"`
	PostalCode          string  `json:"postalCode"`
	City                string  `json:"city"`
	Siret               string  `json:"siret"`
	TvaNumber           string  `json:"tvaNumber"`
	Phone               string  `json:"phone"`
	Email               string  `json:"email"`
	Website             string  `json:"website"`
	Logo                *string `json:"logo"`
	Bank                string  `json:"bank"`
	Iban                string  `json:"iban"`
	Bic                 string  `json:"bic"`
	DefaultPaymentTerms string  `json:"defaultPaymentTerms"`
	DefaultPaymentDelay int     `json:"defaultPaymentDelay" validate:"gte=0"`
	DefaultTva          float64 `json:"defaultTva" validate:"gte=0,lte=100"`
	TvaExempt           bool    `json:"tvaExempt"`
	InvoicePrefix       string  `json:"invoicePrefix" validate:"required"`
	QuotePrefix         string  `json:"quotePrefix" validate:"required"`
	LegalMentions       string  `json:"legalMentions"`
}

const (
	DefaultInvoicePrefix = "F"
	DefaultQuotePrefix   = "D"
)

func DefaultSettings() Settings {
	return Settings{
		DefaultPaymentTerms: "Virement bancaire",
		DefaultPaymentDelay: 30,
		DefaultTva:          20,
		InvoicePrefix:       DefaultInvoicePrefix,
		QuotePrefix:         DefaultQuotePrefix,
		LegalMentions: "En cas de retard de paiement, une pénalité de 3 fois le taux d'intérêt légal sera appliquée, " +
			"ainsi qu'une indemnité forfaitaire de 40 € pour frais de recouvrement. Pas d'escompte en cas de paiement anticipé.",
	}
}

// Prefix returns the numbering prefix for kind, falling back to the default when blank.
func (s Settings) Prefix(kind DocumentType) string {
	if kind == DocumentTypeQuote {
		if s.QuotePrefix == "" {
			return DefaultQuotePrefix
		}
		return s.QuotePrefix
	}
	if s.InvoicePrefix == "" {
		return DefaultInvoicePrefix
	}
	return s.InvoicePrefix
}

// Copy returns a value that shares no pointers with s.
func (s Settings) Copy() Settings {
	if s.Logo != nil {
		logo := *s.Logo
		s.Logo = &logo
	}
	return s
}

// ClientInfo is the client snapshot frozen into a document.
type ClientInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Siret      string `json:"siret"`
}

type Client struct {
	ID string `json:"id"`
	ClientInfo
}

type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TvaRate     float64 `json:"tvaRate"`
}

type TaxLine struct {
	Rate float64 `json:"rate"`
	Base float64 `json:"base"`
	Tva  float64 `json:"tva"`
}

type Totals struct {
	TotalHT      float64   `json:"totalHT"`
	TotalTVA     float64   `json:"totalTVA"`
	TotalTTC     float64   `json:"totalTTC"`
	TvaBreakdown []TaxLine `json:"tvaBreakdown"`
}

type Document struct {
	ID           string       `json:"id"`
	Type         DocumentType `json:"type"`
	Number       string       `json:"number"`
	Title        string       `json:"title,omitempty"`
	Date         string       `json:"date"`
	DueDate      string       `json:"dueDate"`
	Client       ClientInfo   `json:"client"`
	ClientID     *string      `json:"clientId"`
	Items        []LineItem   `json:"items"`
	Notes        string       `json:"notes"`
	Status       Status       `json:"status"`
	Totals       Totals       `json:"totals"`
	Settings     Settings     `json:"settings"`
	DateCreated  time.Time    `json:"dateCreated"`
	DateModified time.Time    `json:"dateModified"`
}

// Copy returns a deep copy; mutating the result never affects d.
func (d *Document) Copy() *Document {
	out := *d
	out.Items = CopyItems(d.Items)
	out.Totals.TvaBreakdown = append([]TaxLine(nil), d.Totals.TvaBreakdown...)
	out.Settings = d.Settings.Copy()
	if d.ClientID != nil {
		id := *d.ClientID
		out.ClientID = &id
	}
	return &out
}

func CopyItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// Counters holds the last sequence number used per document type.
type Counters struct {
	Invoice int `json:"invoice"`
	Quote   int `json:"quote"`
}

func (c Counters) Get(kind DocumentType) int {
	if kind == DocumentTypeQuote {
		return c.Quote
	}
	return c.Invoice
}

func (c Counters) With(kind DocumentType, n int) Counters {
	if kind == DocumentTypeQuote {
		c.Quote = n
	} else {
		c.Invoice = n
	}
	return c
}

// State is the whole persisted blob.
type State struct {
	Settings  Settings    `json:"settings"`
	Clients   []*Client   `json:"clients"`
	Documents []*Document `json:"invoices"`
	Counters  Counters    `json:"counters"`
}

func NewState() *State {
	return &State{
		Settings:  DefaultSettings(),
		Clients:   []*Client{},
		Documents: []*Document{},
	}
}

func NewUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
