// internal/services/import_service_test.go
package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almoxdev/estoque-backend/internal/interchange"
)

func buildWorkbookBytes(t *testing.T, tables []interchange.Table) []byte {
	t.Helper()
	f, err := interchange.BuildWorkbook(tables)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func buildBackupBytes(t *testing.T, collections map[interchange.Collection][]interchange.Record) []byte {
	t.Helper()
	envelope, err := interchange.BuildEnvelope(collections)
	require.NoError(t, err)
	data, err := envelope.Encode()
	require.NoError(t, err)
	return data
}

func TestImportWorkbookInsertsEverySheet(t *testing.T) {
	fake := newFakeStore()
	svc := NewImportService(fake)

	payload := buildWorkbookBytes(t, []interchange.Table{
		{Collection: interchange.StorageLocations, Rows: []interchange.Record{
			{"name": "Central"},
		}},
		{Collection: interchange.Products, Rows: []interchange.Record{
			{"produto": "Arroz", "marca": "Tio João"},
			{"produto": "Feijão", "marca": "Camil"},
		}},
	})

	report, err := svc.ImportWorkbook(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, 0, report.Failed)
	assert.False(t, report.HasFailures())
	assert.Len(t, fake.inserts[interchange.Products], 2)
	assert.Len(t, fake.inserts[interchange.StorageLocations], 1)
}

func TestImportWorkbookIsolatesSheetFailures(t *testing.T) {
	fake := newFakeStore()
	fake.failOn[interchange.Products] = errors.New("constraint violation")
	svc := NewImportService(fake)

	payload := buildWorkbookBytes(t, []interchange.Table{
		{Collection: interchange.Products, Rows: []interchange.Record{
			{"produto": "Arroz"},
		}},
		{Collection: interchange.ShoppingList, Rows: []interchange.Record{
			{"produto": "Feijão", "comprado": false},
		}},
	})

	report, err := svc.ImportWorkbook(context.Background(), payload)
	require.NoError(t, err, "one bad sheet must not abort the operation")

	assert.True(t, report.HasFailures())
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Imported)
	assert.Len(t, fake.inserts[interchange.ShoppingList], 1)

	var failedResult *CollectionResult
	for i := range report.Results {
		if report.Results[i].Collection == interchange.Products {
			failedResult = &report.Results[i]
		}
	}
	require.NotNil(t, failedResult)
	assert.NotEmpty(t, failedResult.Error)
	assert.Zero(t, failedResult.Rows)
}

func TestImportReportFailuresNamesEachProblem(t *testing.T) {
	fake := newFakeStore()
	fake.failOn[interchange.Products] = errors.New("constraint violation")
	svc := NewImportService(fake)

	// One failing sheet, one good sheet, one header-only sheet.
	payload := buildWorkbookBytes(t, []interchange.Table{
		{Collection: interchange.Products, Rows: []interchange.Record{
			{"produto": "Arroz"},
		}},
		{Collection: interchange.ShoppingList, Rows: []interchange.Record{
			{"produto": "Feijão", "comprado": false},
		}},
		{Collection: interchange.Invoices},
	})

	report, err := svc.ImportWorkbook(context.Background(), payload)
	require.NoError(t, err)
	require.True(t, report.HasFailures())

	failures := report.Failures()
	assert.Contains(t, failures, interchange.Label(interchange.Products))
	assert.Contains(t, failures, "constraint violation")
	assert.Contains(t, failures, interchange.Label(interchange.Invoices))
	assert.Contains(t, failures, string(interchange.IssueNoData))
	assert.NotContains(t, failures, interchange.Label(interchange.ShoppingList),
		"a clean sheet does not belong in the failure list")
}

func TestImportWorkbookCarriesSheetIssues(t *testing.T) {
	fake := newFakeStore()
	svc := NewImportService(fake)

	// Header-only sheet yields an issue, not an insert.
	payload := buildWorkbookBytes(t, []interchange.Table{
		{Collection: interchange.Products},
	})

	report, err := svc.ImportWorkbook(context.Background(), payload)
	require.NoError(t, err)

	assert.True(t, report.HasFailures())
	assert.Zero(t, report.Imported)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, interchange.IssueNoData, report.Issues[0].Reason)
}

func TestImportWorkbookRejectsGarbage(t *testing.T) {
	svc := NewImportService(newFakeStore())

	_, err := svc.ImportWorkbook(context.Background(), bytes.Repeat([]byte("x"), 100))
	var formatErr *interchange.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestImportBackupFollowsRestoreOrder(t *testing.T) {
	fake := newFakeStore()
	svc := NewImportService(fake)

	payload := buildBackupBytes(t, map[interchange.Collection][]interchange.Record{
		interchange.ShoppingList:     {{"id": "s1", "produto": "Arroz"}},
		interchange.Products:         {{"id": "p1", "produto": "Arroz"}},
		interchange.StorageLocations: {{"id": "l1", "name": "Central"}},
	})

	report, err := svc.ImportBackup(context.Background(), payload, interchange.All)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, []interchange.Collection{
		interchange.StorageLocations,
		interchange.Products,
		interchange.ShoppingList,
	}, fake.upserts, "writes must follow dependency order regardless of envelope order")
}

func TestImportBackupOnlySelectedCollections(t *testing.T) {
	fake := newFakeStore()
	svc := NewImportService(fake)

	payload := buildBackupBytes(t, map[interchange.Collection][]interchange.Record{
		interchange.Products:     {{"id": "p1", "produto": "Arroz"}},
		interchange.ShoppingList: {{"id": "s1", "produto": "Feijão"}},
	})

	report, err := svc.ImportBackup(context.Background(), payload, []interchange.Collection{interchange.Products})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, []interchange.Collection{interchange.Products}, fake.upserts)
}

func TestImportBackupEmptySelection(t *testing.T) {
	fake := newFakeStore()
	svc := NewImportService(fake)

	payload := buildBackupBytes(t, map[interchange.Collection][]interchange.Record{})

	_, err := svc.ImportBackup(context.Background(), payload, nil)
	assert.ErrorIs(t, err, interchange.ErrNoSelection)
	assert.Empty(t, fake.upserts)
}

func TestImportBackupIsolatesCollectionFailures(t *testing.T) {
	fake := newFakeStore()
	fake.failOn[interchange.Invoices] = errors.New("constraint violation")
	svc := NewImportService(fake)

	payload := buildBackupBytes(t, map[interchange.Collection][]interchange.Record{
		interchange.Invoices: {{"id": "i1", "numero": "NF-001"}},
		interchange.Products: {{"id": "p1", "produto": "Arroz"}},
	})

	report, err := svc.ImportBackup(context.Background(), payload, interchange.All)
	require.NoError(t, err)

	assert.True(t, report.HasFailures())
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Imported)
	assert.Len(t, fake.upserted[interchange.Products], 1)
}

func TestImportBackupSkipsEmptyCollections(t *testing.T) {
	fake := newFakeStore()
	svc := NewImportService(fake)

	payload := buildBackupBytes(t, map[interchange.Collection][]interchange.Record{
		interchange.Products:     {{"id": "p1", "produto": "Arroz"}},
		interchange.ShoppingList: {},
	})

	_, err := svc.ImportBackup(context.Background(), payload, interchange.All)
	require.NoError(t, err)

	assert.Equal(t, []interchange.Collection{interchange.Products}, fake.upserts)
}

func TestImportBackupRejectsUnversionedDocument(t *testing.T) {
	svc := NewImportService(newFakeStore())

	_, err := svc.ImportBackup(context.Background(), []byte(`{"data":{}}`), interchange.All)
	var formatErr *interchange.FormatError
	assert.ErrorAs(t, err, &formatErr)
}
