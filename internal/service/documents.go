package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/numbering"
	"github.com/jesses-code-adventures/facturier/internal/totals"
	"github.com/jesses-code-adventures/facturier/internal/utils"
)

// DocumentInput is the user editable part of a document.
type DocumentInput struct {
	Type     models.DocumentType
	Number   string
	Title    string
	Date     string
	DueDate  string
	Client   models.ClientInfo
	ClientID *string
	Items    []models.LineItem
	Notes    string
}

// ValidateDocument checks what a document needs before it can be saved: a client name,
// a date and at least one line with a description and a positive unit price.
func ValidateDocument(in DocumentInput) error {
	if strings.TrimSpace(in.Client.Name) == "" {
		return &ValidationError{Field: "client.name", Message: "client name is required"}
	}
	if strings.TrimSpace(in.Date) == "" {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return &ValidationError{Field: "date", Message: "date must be formatted YYYY-MM-DD"}
	}
	if in.DueDate != "" {
		if _, err := time.Parse(dateLayout, in.DueDate); err != nil {
			return &ValidationError{Field: "dueDate", Message: "due date must be formatted YYYY-MM-DD"}
		}
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Message: "type must be invoice or quote"}
	}

	for _, item := range in.Items {
		if strings.TrimSpace(item.Description) != "" && item.UnitPrice > 0 {
			return nil
		}
	}
	return &ValidationError{Field: "items", Message: "add at least one line with a description and a price"}
}

func normalizeStatus(status, fallback models.Status) (models.Status, error) {
	if status == "" {
		return fallback, nil
	}
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Message: "status must be draft, sent or paid"}
	}
	return status, nil
}

func prepareItems(items []models.LineItem) []models.LineItem {
	out := models.CopyItems(items)
	if out == nil {
		out = []models.LineItem{}
	}
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = models.NewUUID()
		}
	}
	return out
}

// copyClientID never shares the pointer; a blank id means no linked client.
func copyClientID(id *string) *string {
	return utils.ToPtrNil(utils.FromPtr(id))
}

// NextNumber hands out the next number for kind and persists the counter right away.
// Numbers are never given back, so abandoning a draft leaves a gap in the sequence.
func (s *FacturierService) NextNumber(ctx context.Context, kind models.DocumentType) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextNumberLocked(ctx, kind)
}

func (s *FacturierService) nextNumberLocked(ctx context.Context, kind models.DocumentType) (string, error) {
	prefix := s.state.Settings.Prefix(kind)
	number, counters := numbering.Next(kind, prefix, s.now().Year(), s.state.Counters)
	s.state.Counters = counters
	return number, s.persist(ctx, "save counters")
}

// CreateDocument validates in and appends a new document with freshly computed totals
// and a copy of the current settings. An input without a number gets the next one of its
// type, taken only once the input is valid.
func (s *FacturierService) CreateDocument(ctx context.Context, in DocumentInput, status models.Status) (*models.Document, error) {
	if err := ValidateDocument(in); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(status, models.StatusDraft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Number == "" {
		prefix := s.state.Settings.Prefix(in.Type)
		in.Number, s.state.Counters = numbering.Next(in.Type, prefix, s.now().Year(), s.state.Counters)
	}

	now := s.now().UTC()
	items := prepareItems(in.Items)
	doc := &models.Document{
		ID:           models.NewUUID(),
		Type:         in.Type,
		Number:       in.Number,
		Title:        strings.TrimSpace(in.Title),
		Date:         in.Date,
		DueDate:      in.DueDate,
		Client:       in.Client,
		ClientID:     copyClientID(in.ClientID),
		Items:        items,
		Notes:        strings.TrimSpace(in.Notes),
		Status:       status,
		Totals:       totals.Compute(items),
		Settings:     s.state.Settings.Copy(),
		DateCreated:  now,
		DateModified: now,
	}
	s.state.Documents = append(s.state.Documents, doc)

	s.log.Debug().Str("id", doc.ID).Str("number", doc.Number).Msg("document created")
	return doc.Copy(), s.persist(ctx, "save document")
}

// UpdateDocument replaces the editable fields of a saved document, recomputes its totals
// and refreshes its settings snapshot. An empty status keeps the current one.
func (s *FacturierService) UpdateDocument(ctx context.Context, id string, in DocumentInput, status models.Status) (*models.Document, error) {
	if err := ValidateDocument(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.findDocument(id)
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	status, err := normalizeStatus(status, doc.Status)
	if err != nil {
		return nil, err
	}

	items := prepareItems(in.Items)
	doc.Type = in.Type
	doc.Number = in.Number
	doc.Title = strings.TrimSpace(in.Title)
	doc.Date = in.Date
	doc.DueDate = in.DueDate
	doc.Client = in.Client
	doc.ClientID = copyClientID(in.ClientID)
	doc.Items = items
	doc.Notes = strings.TrimSpace(in.Notes)
	doc.Status = status
	doc.Totals = totals.Compute(items)
	doc.Settings = s.state.Settings.Copy()
	doc.DateModified = s.now().UTC()

	s.log.Debug().Str("id", doc.ID).Str("number", doc.Number).Msg("document updated")
	return doc.Copy(), s.persist(ctx, "save document")
}

// SetStatus overwrites the status. Any status can follow any other.
func (s *FacturierService) SetStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: "status must be draft, sent or paid"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.findDocument(id)
	if doc == nil {
		return ErrDocumentNotFound
	}
	doc.Status = status
	doc.DateModified = s.now().UTC()
	return s.persist(ctx, "update status")
}

func (s *FacturierService) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.state.Documents {
		if doc.ID == id {
			s.state.Documents = append(s.state.Documents[:i], s.state.Documents[i+1:]...)
			return s.persist(ctx, "delete document")
		}
	}
	return ErrDocumentNotFound
}

func (s *FacturierService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := s.findDocument(id)
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc.Copy(), nil
}

// ResolveDocument finds a document by id, or failing that by its number.
func (s *FacturierService) ResolveDocument(ctx context.Context, ref string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc := s.findDocument(ref); doc != nil {
		return doc.Copy(), nil
	}
	for _, doc := range s.state.Documents {
		if strings.EqualFold(doc.Number, ref) {
			return doc.Copy(), nil
		}
	}
	return nil, ErrDocumentNotFound
}

type DocumentFilter struct {
	Type   models.DocumentType
	Search string
}

// ListDocuments returns the newest documents first, filtered by type and by a case
// insensitive search over number, title and client name.
func (s *FacturierService) ListDocuments(ctx context.Context, filter DocumentFilter) []*models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*models.Document
	for _, doc := range s.state.Documents {
		if filter.Type != "" && doc.Type != filter.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(doc.Number), search) &&
			!strings.Contains(strings.ToLower(doc.Title), search) &&
			!strings.Contains(strings.ToLower(doc.Client.Name), search) {
			continue
		}
		out = append(out, doc.Copy())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateCreated.After(out[j].DateCreated)
	})
	return out
}

func (s *FacturierService) findDocument(id string) *models.Document {
	for _, doc := range s.state.Documents {
		if doc.ID == id {
			return doc
		}
	}
	return nil
}
