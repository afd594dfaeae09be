package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/facturier/internal/database"
	"github.com/jesses-code-adventures/facturier/internal/models"
)

const testKey = "facturier_data"

type memDB struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut error
	failGet error
}

func newMemDB() *memDB {
	return &memDB{data: map[string][]byte{}}
}

func (m *memDB) Close() error { return nil }

func (m *memDB) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memDB) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memDB) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, db database.DB) *FacturierService {
	t.Helper()
	svc := NewFacturierService(db, testKey, zerolog.Nop())
	svc.SetClock(func() time.Time { return fixedNow })
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

// tick returns a clock that advances one second per call.
func tick(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func validInput() DocumentInput {
	return DocumentInput{
		Type:   models.DocumentTypeInvoice,
		Number: "F-2025-001",
		Date:   "2025-03-14",
		Client: models.ClientInfo{Name: "Acme SARL", City: "Lyon"},
		Items: []models.LineItem{
			{Description: "Conseil", Quantity: 2, UnitPrice: 50, TvaRate: 20},
			{Description: "Formation", Quantity: 1, UnitPrice: 30, TvaRate: 10},
		},
	}
}

func TestLoadStartsFromDefaults(t *testing.T) {
	svc := newTestService(t, newMemDB())

	settings := svc.Settings(context.Background())
	require.Equal(t, models.DefaultSettings(), settings)
	require.Empty(t, svc.ListDocuments(context.Background(), DocumentFilter{}))
	require.Empty(t, svc.ListClients(context.Background()))
}

func TestLoadUnreadableBlobFallsBackToDefaults(t *testing.T) {
	db := newMemDB()
	db.data[testKey] = []byte("{not json")

	svc := newTestService(t, db)
	require.Equal(t, models.DefaultSettings(), svc.Settings(context.Background()))
}

func TestLoadReadFailureIsStorageError(t *testing.T) {
	db := newMemDB()
	db.failGet = errors.New("disk on fire")

	svc := NewFacturierService(db, testKey, zerolog.Nop())
	err := svc.Load(context.Background())

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestStatePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()

	first := newTestService(t, db)
	doc, err := first.CreateDocument(ctx, validInput(), models.StatusDraft)
	require.NoError(t, err)
	_, err = first.NextNumber(ctx, models.DocumentTypeQuote)
	require.NoError(t, err)

	second := newTestService(t, db)
	got, err := second.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.Number, got.Number)
	require.Equal(t, doc.Totals, got.Totals)
	require.True(t, doc.DateCreated.Equal(got.DateCreated))

	number, err := second.NextNumber(ctx, models.DocumentTypeQuote)
	require.NoError(t, err)
	require.Equal(t, "D-2025-002", number)
}

func TestResetDropsEverything(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	svc := newTestService(t, db)

	_, err := svc.CreateDocument(ctx, validInput(), "")
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx))

	require.Empty(t, svc.ListDocuments(ctx, DocumentFilter{}))
	_, err = db.Get(ctx, testKey)
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-01-31", 30)
	require.NoError(t, err)
	require.Equal(t, "2025-03-02", got)

	got, err = AddDays("2024-12-15", 30)
	require.NoError(t, err)
	require.Equal(t, "2025-01-14", got)

	_, err = AddDays("14/03/2025", 30)
	require.Error(t, err)
}
