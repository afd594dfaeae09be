package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t, newMemDB())

	_, _, err := src.SaveClient(ctx, models.ClientInfo{Name: "Acme SARL"})
	require.NoError(t, err)
	doc, err := src.CreateDocument(ctx, validInput(), models.StatusSent)
	require.NoError(t, err)
	_, err = src.NextNumber(ctx, models.DocumentTypeInvoice)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Export(ctx, &buf))

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &keys))
	for _, k := range []string{"settings", "clients", "invoices", "counters"} {
		require.Contains(t, keys, k)
	}

	dst := newTestService(t, newMemDB())
	require.NoError(t, dst.Import(ctx, &buf))

	got, err := dst.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.Totals, got.Totals)
	require.Len(t, dst.ListClients(ctx), 1)

	number, err := dst.NextNumber(ctx, models.DocumentTypeInvoice)
	require.NoError(t, err)
	require.Equal(t, "F-2025-002", number)
}

func TestImportRejectsMalformedBackups(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", `{"settings": `},
		{"missing clients", `{"settings": {}, "invoices": []}`},
		{"missing invoices", `{"settings": {}, "clients": []}`},
		{"missing settings", `{"clients": [], "invoices": []}`},
		{"null clients", `{"settings": {}, "invoices": [], "clients": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := newTestService(t, newMemDB())
			doc, err := svc.CreateDocument(ctx, validInput(), "")
			require.NoError(t, err)

			err = svc.Import(ctx, strings.NewReader(tt.blob))
			var formatErr *ImportFormatError
			require.ErrorAs(t, err, &formatErr)

			_, err = svc.GetDocument(ctx, doc.ID)
			require.NoError(t, err)
			require.Len(t, svc.ListDocuments(ctx, DocumentFilter{}), 1)
		})
	}
}

func TestImportMergesSettingsOverDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	blob := `{
		"settings": {"companyName": "Atelier Dupont", "defaultTva": 10},
		"clients": [],
		"invoices": []
	}`
	require.NoError(t, svc.Import(ctx, strings.NewReader(blob)))

	settings := svc.Settings(ctx)
	require.Equal(t, "Atelier Dupont", settings.CompanyName)
	require.Equal(t, 10.0, settings.DefaultTva)
	require.Equal(t, 30, settings.DefaultPaymentDelay)
	require.Equal(t, "F", settings.InvoicePrefix)
	require.False(t, settings.TvaExempt)

	number, err := svc.NextNumber(ctx, models.DocumentTypeQuote)
	require.NoError(t, err)
	require.Equal(t, "D-2025-001", number)
}

func TestExportFileName(t *testing.T) {
	require.Equal(t, "facturier-backup-2025-03-14.json", ExportFileName(fixedNow))
	require.Equal(t, "facturier-backup-2024-12-31.json", ExportFileName(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	_, err := svc.CreateDocument(ctx, validInput(), models.StatusPaid)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "number", records[0][0])
	require.Equal(t, []string{"F-2025-001", "invoice", "paid", "2025-03-14", "", "Acme SARL", "130.00", "23.00", "153.00"}, records[1])
}
