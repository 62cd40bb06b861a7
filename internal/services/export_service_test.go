// internal/services/export_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almoxdev/estoque-backend/internal/interchange"
)

// fakeStore is an in-memory DataStore that records every call.
type fakeStore struct {
	mu       sync.Mutex
	data     map[interchange.Collection][]interchange.Record
	failOn   map[interchange.Collection]error
	reads    []interchange.Collection
	inserts  map[interchange.Collection][]interchange.Record
	upserts  []interchange.Collection
	upserted map[interchange.Collection][]interchange.Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:     map[interchange.Collection][]interchange.Record{},
		failOn:   map[interchange.Collection]error{},
		inserts:  map[interchange.Collection][]interchange.Record{},
		upserted: map[interchange.Collection][]interchange.Record{},
	}
}

func (f *fakeStore) ReadAll(_ context.Context, c interchange.Collection) ([]interchange.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, c)
	if err := f.failOn[c]; err != nil {
		return nil, err
	}
	return f.data[c], nil
}

func (f *fakeStore) BulkInsert(_ context.Context, c interchange.Collection, rows []interchange.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[c]; err != nil {
		return err
	}
	f.inserts[c] = append(f.inserts[c], rows...)
	return nil
}

func (f *fakeStore) BulkUpsert(_ context.Context, c interchange.Collection, rows []interchange.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[c]; err != nil {
		return err
	}
	f.upserts = append(f.upserts, c)
	f.upserted[c] = append(f.upserted[c], rows...)
	return nil
}

func TestExportWorkbookEmptySelection(t *testing.T) {
	fake := newFakeStore()
	svc := NewExportService(fake, nil)

	_, err := svc.ExportWorkbook(context.Background(), nil)
	assert.ErrorIs(t, err, interchange.ErrNoSelection)
	assert.Empty(t, fake.reads, "empty selection must issue no store reads")
}

func TestExportWorkbookUnknownCollection(t *testing.T) {
	fake := newFakeStore()
	svc := NewExportService(fake, nil)

	_, err := svc.ExportWorkbook(context.Background(), []interchange.Collection{"users"})
	var formatErr *interchange.FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Empty(t, fake.reads)
}

func TestExportWorkbookFilename(t *testing.T) {
	fake := newFakeStore()
	fake.data[interchange.Products] = []interchange.Record{{"produto": "Arroz"}}
	svc := NewExportService(fake, nil)

	artifact, err := svc.ExportWorkbook(context.Background(), []interchange.Collection{interchange.Products})
	require.NoError(t, err)

	assert.Regexp(t, `^exportacao-\d{4}-\d{2}-\d{2}-\d{4}\.xlsx$`, artifact.Filename)
	assert.Equal(t, contentTypeXLSX, artifact.ContentType)
	assert.NotEmpty(t, artifact.Data)
}

func TestExportWorkbookNormalizesSelectionOrder(t *testing.T) {
	fake := newFakeStore()
	svc := NewExportService(fake, nil)

	// Requested out of display order, duplicated.
	_, err := svc.ExportWorkbook(context.Background(), []interchange.Collection{
		interchange.ShoppingList,
		interchange.Products,
		interchange.Products,
	})
	require.NoError(t, err)

	assert.Len(t, fake.reads, 2)
	assert.ElementsMatch(t, []interchange.Collection{interchange.Products, interchange.ShoppingList}, fake.reads)
}

func TestExportWorkbookReadFailure(t *testing.T) {
	fake := newFakeStore()
	fake.failOn[interchange.Products] = errors.New("connection refused")
	svc := NewExportService(fake, nil)

	_, err := svc.ExportWorkbook(context.Background(), []interchange.Collection{interchange.Products})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products")
}

func TestExportPDFFilename(t *testing.T) {
	fake := newFakeStore()
	fake.data[interchange.Invoices] = []interchange.Record{{"numero": "NF-001"}}
	svc := NewExportService(fake, nil)

	artifact, err := svc.ExportPDF(context.Background(), []interchange.Collection{interchange.Invoices})
	require.NoError(t, err)

	assert.Regexp(t, `^exportacao-\d{4}-\d{2}-\d{2}-\d{4}\.pdf$`, artifact.Filename)
	assert.Equal(t, contentTypePDF, artifact.ContentType)
	assert.Equal(t, "%PDF", string(artifact.Data[:4]))
}

func TestExportBackupCoversEveryCollection(t *testing.T) {
	fake := newFakeStore()
	fake.data[interchange.Products] = []interchange.Record{{"id": "p1", "produto": "Arroz"}}
	svc := NewExportService(fake, nil)

	artifact, err := svc.ExportBackup(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^backup-estoque-\d{4}-\d{2}-\d{2}\.json$`, artifact.Filename)
	assert.Equal(t, contentTypeJSON, artifact.ContentType)
	assert.Len(t, fake.reads, len(interchange.All))

	envelope, err := interchange.ParseEnvelope(artifact.Data)
	require.NoError(t, err)
	for _, c := range interchange.All {
		_, present := envelope.Raw(c)
		assert.True(t, present, "backup should carry collection %s", c)
	}

	rows, err := envelope.Rows(interchange.Products)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arroz", rows[0]["produto"])
}

func TestExportBackupEnvelopeIsVersioned(t *testing.T) {
	fake := newFakeStore()
	svc := NewExportService(fake, nil)

	artifact, err := svc.ExportBackup(context.Background())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(artifact.Data, &doc))
	assert.Equal(t, fmt.Sprintf("%q", interchange.EnvelopeVersion), string(doc["version"]))
}

func TestExportTemplateFilename(t *testing.T) {
	svc := NewExportService(newFakeStore(), nil)

	artifact, err := svc.ExportTemplate(interchange.ShoppingList)
	require.NoError(t, err)

	assert.Regexp(t, `^modelo-shopping_list-\d{4}-\d{2}-\d{2}\.xlsx$`, artifact.Filename)
	assert.NotEmpty(t, artifact.Data)
}

func TestExportTemplateUnknownCollection(t *testing.T) {
	svc := NewExportService(newFakeStore(), nil)

	_, err := svc.ExportTemplate(interchange.Collection("users"))
	var formatErr *interchange.FormatError
	assert.ErrorAs(t, err, &formatErr)
}
