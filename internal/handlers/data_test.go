// internal/handlers/data_test.go
package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/almoxdev/estoque-backend/internal/interchange"
	"github.com/almoxdev/estoque-backend/internal/services"
)

// memoryStore is an in-memory DataStore for handler tests.
type memoryStore struct {
	mu      sync.Mutex
	data    map[interchange.Collection][]interchange.Record
	inserts map[interchange.Collection]int
	upserts map[interchange.Collection]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data:    map[interchange.Collection][]interchange.Record{},
		inserts: map[interchange.Collection]int{},
		upserts: map[interchange.Collection]int{},
	}
}

func (m *memoryStore) ReadAll(_ context.Context, c interchange.Collection) ([]interchange.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[c], nil
}

func (m *memoryStore) BulkInsert(_ context.Context, c interchange.Collection, rows []interchange.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts[c] += len(rows)
	return nil
}

func (m *memoryStore) BulkUpsert(_ context.Context, c interchange.Collection, rows []interchange.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts[c] += len(rows)
	return nil
}

type DataTestSuite struct {
	suite.Suite
	store  *memoryStore
	router *gin.Engine
}

func (suite *DataTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.store = newMemoryStore()

	importService := services.NewImportService(suite.store)
	exportService := services.NewExportService(suite.store, nil)
	notificationService := services.NewNotificationService(nil)
	handler := NewDataHandler(importService, exportService, notificationService)

	suite.router = gin.New()
	data := suite.router.Group("/data")
	{
		data.POST("/import", handler.ImportWorkbook)
		data.GET("/export", handler.ExportWorkbook)
		data.GET("/export/pdf", handler.ExportPDF)
		data.GET("/backup", handler.ExportBackup)
		data.POST("/restore", handler.RestoreBackup)
		data.GET("/templates/:table", handler.DownloadTemplate)
	}
}

func (suite *DataTestSuite) multipartUpload(t *testing.T, url, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *DataTestSuite) TestExportWithoutSelection() {
	req, _ := http.NewRequest("GET", "/data/export", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *DataTestSuite) TestExportWorkbook() {
	suite.store.data[interchange.Products] = []interchange.Record{{"produto": "Arroz"}}

	req, _ := http.NewRequest("GET", "/data/export?tables=products,shopping_list", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Content-Disposition"), "exportacao-")
	assert.Contains(suite.T(), w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(suite.T(), w.Body.Bytes())
}

func (suite *DataTestSuite) TestExportUnknownTable() {
	req, _ := http.NewRequest("GET", "/data/export?tables=users", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *DataTestSuite) TestExportPDF() {
	suite.store.data[interchange.Invoices] = []interchange.Record{{"numero": "NF-001"}}

	req, _ := http.NewRequest("GET", "/data/export/pdf?tables=invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(suite.T(), "%PDF", w.Body.String()[:4])
}

func (suite *DataTestSuite) TestBackupDownload() {
	suite.store.data[interchange.Products] = []interchange.Record{{"id": "p1", "produto": "Arroz"}}

	req, _ := http.NewRequest("GET", "/data/backup", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Content-Disposition"), "backup-estoque-")

	envelope, err := interchange.ParseEnvelope(w.Body.Bytes())
	require.NoError(suite.T(), err)
	rows, err := envelope.Rows(interchange.Products)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 1)
}

func (suite *DataTestSuite) TestImportWorkbook() {
	f, err := interchange.BuildWorkbook([]interchange.Table{
		{Collection: interchange.Products, Rows: []interchange.Record{
			{"produto": "Arroz", "marca": "Tio João"},
		}},
	})
	require.NoError(suite.T(), err)
	buf, err := f.WriteToBuffer()
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), f.Close())

	w := suite.multipartUpload(suite.T(), "/data/import", "planilha.xlsx", buf.Bytes(), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), 1, suite.store.inserts[interchange.Products])
}

func (suite *DataTestSuite) TestImportRejectsGarbage() {
	w := suite.multipartUpload(suite.T(), "/data/import", "planilha.xlsx", []byte("garbage"), nil)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
}

func (suite *DataTestSuite) TestRestoreBackup() {
	envelope, err := interchange.BuildEnvelope(map[interchange.Collection][]interchange.Record{
		interchange.Products:         {{"id": "p1", "produto": "Arroz"}},
		interchange.StorageLocations: {{"id": "l1", "name": "Central"}},
	})
	require.NoError(suite.T(), err)
	payload, err := envelope.Encode()
	require.NoError(suite.T(), err)

	w := suite.multipartUpload(suite.T(), "/data/restore", "backup.json", payload, map[string]string{
		"tables": "products,storage_locations",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), 1, suite.store.upserts[interchange.Products])
	assert.Equal(suite.T(), 1, suite.store.upserts[interchange.StorageLocations])
}

func (suite *DataTestSuite) TestRestoreWithoutSelection() {
	envelope, err := interchange.BuildEnvelope(map[interchange.Collection][]interchange.Record{})
	require.NoError(suite.T(), err)
	payload, err := envelope.Encode()
	require.NoError(suite.T(), err)

	w := suite.multipartUpload(suite.T(), "/data/restore", "backup.json", payload, nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *DataTestSuite) TestTemplateDownload() {
	req, _ := http.NewRequest("GET", "/data/templates/products", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Content-Disposition"), "modelo-products-")
}

func (suite *DataTestSuite) TestTemplateUnknownTable() {
	req, _ := http.NewRequest("GET", "/data/templates/users", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestDataTestSuite(t *testing.T) {
	suite.Run(t, new(DataTestSuite))
}
