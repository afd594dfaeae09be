package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

// rawState keeps the top level keys undecoded so that a missing key can be told
// apart from an empty one.
type rawState struct {
	Settings json.RawMessage `json:"settings"`
	Clients  json.RawMessage `json:"clients"`
	Invoices json.RawMessage `json:"invoices"`
	Counters json.RawMessage `json:"counters"`
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// decodeState parses a persisted blob. Settings are merged over the defaults and
// missing collections or counters start empty.
func decodeState(data []byte) (*models.State, rawState, error) {
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, raw, fmt.Errorf("failed to parse state: %w", err)
	}

	state := models.NewState()
	if present(raw.Settings) {
		if err := json.Unmarshal(raw.Settings, &state.Settings); err != nil {
			return nil, raw, fmt.Errorf("failed to parse settings: %w", err)
		}
	}
	if present(raw.Clients) {
		if err := json.Unmarshal(raw.Clients, &state.Clients); err != nil {
			return nil, raw, fmt.Errorf("failed to parse clients: %w", err)
		}
	}
	if present(raw.Invoices) {
		if err := json.Unmarshal(raw.Invoices, &state.Documents); err != nil {
			return nil, raw, fmt.Errorf("failed to parse invoices: %w", err)
		}
	}
	if present(raw.Counters) {
		if err := json.Unmarshal(raw.Counters, &state.Counters); err != nil {
			return nil, raw, fmt.Errorf("failed to parse counters: %w", err)
		}
	}

	state.Clients = compactClients(state.Clients)
	state.Documents = compactDocuments(state.Documents)
	return state, raw, nil
}

func compactClients(in []*models.Client) []*models.Client {
	out := make([]*models.Client, 0, len(in))
	for _, c := range in {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func compactDocuments(in []*models.Document) []*models.Document {
	out := make([]*models.Document, 0, len(in))
	for _, d := range in {
		if d == nil {
			continue
		}
		if d.Items == nil {
			d.Items = []models.LineItem{}
		}
		if d.Totals.TvaBreakdown == nil {
			d.Totals.TvaBreakdown = []models.TaxLine{}
		}
		out = append(out, d)
	}
	return out
}

// Export writes the whole state as indented JSON, in the same shape as the stored blob.
func (s *FacturierService) Export(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.state); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

func ExportFileName(now time.Time) string {
	return fmt.Sprintf("facturier-backup-%s.json", now.Format(dateLayout))
}

// Import replaces all state with a backup. The backup must carry settings, clients and
// invoices; otherwise nothing changes.
func (s *FacturierService) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	state, raw, err := decodeState(data)
	if err != nil {
		return &ImportFormatError{Reason: "unreadable JSON", Err: errors.Unwrap(err)}
	}
	switch {
	case !present(raw.Settings):
		return &ImportFormatError{Reason: "missing settings"}
	case !present(raw.Invoices):
		return &ImportFormatError{Reason: "missing invoices"}
	case !present(raw.Clients):
		return &ImportFormatError{Reason: "missing clients"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.log.Info().
		Int("documents", len(state.Documents)).
		Int("clients", len(state.Clients)).
		Msg("backup imported")
	return s.persist(ctx, "import backup")
}

// ExportCSV writes one summary row per document, oldest first.
func (s *FacturierService) ExportCSV(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writer := csv.NewWriter(w)
	header := []string{"number", "type", "status", "date", "due_date", "client", "total_ht", "total_tva", "total_ttc"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, doc := range s.state.Documents {
		record := []string{
			doc.Number,
			string(doc.Type),
			string(doc.Status),
			doc.Date,
			doc.DueDate,
			doc.Client.Name,
			formatAmount(doc.Totals.TotalHT),
			formatAmount(doc.Totals.TotalTVA),
			formatAmount(doc.Totals.TotalTTC),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
