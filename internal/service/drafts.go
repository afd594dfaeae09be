package service

import (
	"context"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/totals"
	"github.com/jesses-code-adventures/facturier/internal/utils"
)

// Draft is a document being composed. EditingID is empty until the draft has been saved
// once or when it was opened from history.
type Draft struct {
	EditingID string
	DocumentInput
}

func (d *Draft) Editing() bool {
	return d.EditingID != ""
}

// SetDate changes the document date. A new draft moves its due date along; a saved
// document keeps the due date it had.
func (d *Draft) SetDate(date string, paymentDelay int) error {
	if date == "" {
		d.Date = date
		return nil
	}
	if d.Editing() {
		d.Date = date
		return nil
	}
	due, err := AddDays(date, paymentDelay)
	if err != nil {
		return &ValidationError{Field: "date", Message: err.Error()}
	}
	d.Date = date
	d.DueDate = due
	return nil
}

// UseClient copies a saved client into the draft's snapshot and links it.
func (d *Draft) UseClient(c *models.Client) {
	d.Client = c.ClientInfo
	d.ClientID = utils.ToPtr(c.ID)
}

// Totals previews what would be stored if the draft were saved now.
func (d *Draft) Totals() models.Totals {
	return totals.Compute(d.Items)
}

func NewLineItem(defaultTva float64) models.LineItem {
	return models.LineItem{
		ID:        models.NewUUID(),
		Quantity:  1,
		UnitPrice: 0,
		TvaRate:   defaultTva,
	}
}

// NewDraft starts a blank document of kind. The number is reserved immediately; if
// persisting the counter fails the draft is still returned with the error.
func (s *FacturierService) NewDraft(ctx context.Context, kind models.DocumentType) (*Draft, error) {
	if !kind.Valid() {
		return nil, &ValidationError{Field: "type", Message: "type must be invoice or quote"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.freshDraftLocked(ctx, kind)
	draft.Items = []models.LineItem{NewLineItem(s.state.Settings.DefaultTva)}
	return draft, err
}

// BlankDraft starts a document of kind without reserving a number. Saving it takes the
// next number, so a draft that never passes validation leaves no gap.
func (s *FacturierService) BlankDraft(ctx context.Context, kind models.DocumentType) (*Draft, error) {
	if !kind.Valid() {
		return nil, &ValidationError{Field: "type", Message: "type must be invoice or quote"}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	draft := s.blankDraftLocked(kind)
	draft.Items = []models.LineItem{NewLineItem(s.state.Settings.DefaultTva)}
	return draft, nil
}

func (s *FacturierService) blankDraftLocked(kind models.DocumentType) *Draft {
	today := s.now().Format(dateLayout)
	due, _ := AddDays(today, s.state.Settings.DefaultPaymentDelay)
	return &Draft{
		DocumentInput: DocumentInput{
			Type:    kind,
			Date:    today,
			DueDate: due,
		},
	}
}

func (s *FacturierService) freshDraftLocked(ctx context.Context, kind models.DocumentType) (*Draft, error) {
	draft := s.blankDraftLocked(kind)
	number, err := s.nextNumberLocked(ctx, kind)
	draft.Number = number
	return draft, err
}

// EditDraft opens a saved document for editing.
func (s *FacturierService) EditDraft(ctx context.Context, id string) (*Draft, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	items := models.CopyItems(doc.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = models.NewUUID()
		}
	}
	return &Draft{
		EditingID: doc.ID,
		DocumentInput: DocumentInput{
			Type:     doc.Type,
			Number:   doc.Number,
			Title:    doc.Title,
			Date:     doc.Date,
			DueDate:  doc.DueDate,
			Client:   doc.Client,
			ClientID: copyClientID(doc.ClientID),
			Items:    items,
			Notes:    doc.Notes,
		},
	}, nil
}

// Duplicate seeds a new draft from a saved document: same type, client, title, notes
// and lines under a new number, dated today. Nothing is saved except the counter.
func (s *FacturierService) Duplicate(ctx context.Context, id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.findDocument(id)
	if src == nil {
		return nil, ErrDocumentNotFound
	}

	draft, err := s.freshDraftLocked(ctx, src.Type)
	draft.Title = src.Title
	draft.Client = src.Client
	draft.ClientID = copyClientID(src.ClientID)
	draft.Notes = src.Notes
	draft.Items = make([]models.LineItem, len(src.Items))
	for i, item := range src.Items {
		item.ID = models.NewUUID()
		draft.Items[i] = item
	}
	return draft, err
}

// ChangeDraftType switches between invoice and quote. Only a new draft that already
// holds a number gets a new one; a saved document keeps its own and a blank draft is
// numbered when saved.
func (s *FacturierService) ChangeDraftType(ctx context.Context, d *Draft, kind models.DocumentType) error {
	if !kind.Valid() {
		return &ValidationError{Field: "type", Message: "type must be invoice or quote"}
	}
	d.Type = kind
	if d.Editing() || d.Number == "" {
		return nil
	}

	number, err := s.NextNumber(ctx, kind)
	d.Number = number
	return err
}

// SaveDraft creates or updates the document behind d. After a first save the draft
// points at the new document, so saving again updates it.
func (s *FacturierService) SaveDraft(ctx context.Context, d *Draft, status models.Status) (*models.Document, error) {
	if d.Editing() {
		return s.UpdateDocument(ctx, d.EditingID, d.DocumentInput, status)
	}

	doc, err := s.CreateDocument(ctx, d.DocumentInput, status)
	if doc != nil {
		d.EditingID = doc.ID
		d.Number = doc.Number
	}
	return doc, err
}
