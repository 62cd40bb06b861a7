// internal/interchange/pdf_test.go
package interchange

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPDFProducesDocument(t *testing.T) {
	data, err := BuildPDF([]Table{
		{Collection: Products, Rows: []Record{
			{"produto": "Arroz", "marca": "Tio João", "quantidade": float64(10)},
		}},
		{Collection: Invoices, Rows: []Record{
			{"numero": "NF-001", "data": "2025-01-15", "valor_total": float64(1500)},
		}},
	}, DocumentHeader{
		CompanyName:  "Minha Empresa",
		CNPJ:         "12.345.678/0001-95",
		Responsaveis: []string{"Ana", "Bruno"},
		GeneratedAt:  time.Now(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func pdfPageCount(data []byte) int {
	// Page objects are "/Type /Page"; the page-tree root is "/Type /Pages".
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func TestBuildPDFPaginatesLongTables(t *testing.T) {
	small, err := BuildPDF([]Table{
		{Collection: Products, Rows: []Record{{"produto": "Arroz"}}},
	}, DocumentHeader{})
	require.NoError(t, err)

	var rows []Record
	for i := 0; i < 80; i++ {
		rows = append(rows, Record{"produto": fmt.Sprintf("Produto %d", i), "marca": "Marca"})
	}
	var tables []Table
	for _, c := range All {
		tables = append(tables, Table{Collection: c, Rows: rows})
	}
	large, err := BuildPDF(tables, DocumentHeader{})
	require.NoError(t, err)

	assert.Equal(t, 1, pdfPageCount(small))
	assert.Greater(t, pdfPageCount(large), len(All)-1, "each long section should start a fresh page")
}

func encodeTestLogo(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestBuildPDFLogoFormats(t *testing.T) {
	tables := []Table{
		{Collection: Products, Rows: []Record{{"produto": "Arroz"}}},
	}

	pngLogo := encodeTestLogo(t, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})
	jpegLogo := encodeTestLogo(t, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})

	for name, logo := range map[string][]byte{
		"png":  pngLogo,
		"jpeg": jpegLogo,
		// An unrecognized or truncated logo is skipped, never fatal.
		"garbage":        []byte("definitely not an image"),
		"truncated jpeg": {0xFF, 0xD8, 0xFF, 0xE0, 0x00},
	} {
		data, err := BuildPDF(tables, DocumentHeader{CompanyName: "Minha Empresa", Logo: logo})
		require.NoError(t, err, name)
		assert.Equal(t, "%PDF", string(data[:4]), name)
	}
}

func TestBuildPDFEmptyHeader(t *testing.T) {
	data, err := BuildPDF([]Table{
		{Collection: StorageLocations, Rows: []Record{{"name": "Central"}}},
	}, DocumentHeader{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
