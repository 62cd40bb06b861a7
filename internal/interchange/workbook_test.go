// internal/interchange/workbook_test.go
package interchange

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestBuildWorkbookSheetPerCollection(t *testing.T) {
	f, err := BuildWorkbook([]Table{
		{Collection: Products, Rows: []Record{{"produto": "Arroz", "marca": "Tio João"}}},
		{Collection: ShoppingList, Rows: []Record{{"produto": "Feijão", "comprado": true}}},
	})
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Produtos", "Lista de Compras"}, sheets)

	rows, err := f.GetRows("Produtos")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Produto", rows[0][0])
	assert.Equal(t, "Marca", rows[0][1])
	assert.Equal(t, "Arroz", rows[1][0])
}

func TestBuildWorkbookRendersBooleanLabels(t *testing.T) {
	f, err := BuildWorkbook([]Table{
		{Collection: ShoppingList, Rows: []Record{
			{"produto": "Arroz", "comprado": true},
			{"produto": "Feijão", "comprado": false},
		}},
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Lista de Compras")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Sim", rows[1][4])
	assert.Equal(t, "Não", rows[2][4])
}

func TestParseWorkbookRoundTrip(t *testing.T) {
	f, err := BuildWorkbook([]Table{
		{Collection: StorageLocations, Rows: []Record{
			{"name": "Almoxarifado", "description": "Central"},
		}},
	})
	require.NoError(t, err)

	data, err := ParseWorkbook(bytes.NewReader(workbookBytes(t, f)))
	require.NoError(t, err)
	require.Len(t, data.Tables, 1)
	assert.Empty(t, data.Issues)

	table := data.Tables[0]
	assert.Equal(t, StorageLocations, table.Collection)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Almoxarifado", table.Rows[0]["name"])
	assert.Equal(t, "Central", table.Rows[0]["description"])
}

func TestParseWorkbookCoercesPurchasedFlag(t *testing.T) {
	f, err := BuildWorkbook([]Table{
		{Collection: ShoppingList, Rows: []Record{
			{"produto": "Arroz", "comprado": true},
			{"produto": "Feijão", "comprado": false},
		}},
	})
	require.NoError(t, err)

	data, err := ParseWorkbook(bytes.NewReader(workbookBytes(t, f)))
	require.NoError(t, err)
	require.Len(t, data.Tables, 1)

	rows := data.Tables[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, true, rows[0]["comprado"])
	assert.Equal(t, false, rows[1]["comprado"])
}

func TestParseWorkbookUnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Planilha1"))
	require.NoError(t, f.SetCellValue("Planilha1", "A1", "whatever"))

	data, err := ParseWorkbook(bytes.NewReader(workbookBytes(t, f)))
	require.NoError(t, err)

	assert.Empty(t, data.Tables)
	require.Len(t, data.Issues, 1)
	assert.Equal(t, "Planilha1", data.Issues[0].Sheet)
	assert.Equal(t, IssueUnknownSheet, data.Issues[0].Reason)
}

func TestParseWorkbookHeaderOnlySheet(t *testing.T) {
	f, err := BuildWorkbook([]Table{{Collection: Products}})
	require.NoError(t, err)

	data, err := ParseWorkbook(bytes.NewReader(workbookBytes(t, f)))
	require.NoError(t, err)

	assert.Empty(t, data.Tables)
	require.Len(t, data.Issues, 1)
	assert.Equal(t, IssueNoData, data.Issues[0].Reason)
}

func TestParseWorkbookDropsEmptyCellsAndRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Produtos"))
	require.NoError(t, f.SetCellValue("Produtos", "A1", "Produto"))
	require.NoError(t, f.SetCellValue("Produtos", "B1", "Marca"))
	require.NoError(t, f.SetCellValue("Produtos", "A2", "Arroz"))
	// row 3 stays entirely empty, row 4 has an unknown header position only
	require.NoError(t, f.SetCellValue("Produtos", "A4", ""))

	data, err := ParseWorkbook(bytes.NewReader(workbookBytes(t, f)))
	require.NoError(t, err)
	require.Len(t, data.Tables, 1)

	rows := data.Tables[0].Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Arroz", rows[0]["produto"])
	_, hasMarca := rows[0]["marca"]
	assert.False(t, hasMarca)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}
