// internal/interchange/template.go
package interchange

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildTemplate produces a single-sheet workbook for one collection with the
// header row and a couple of filled-in example rows, for users to copy over
// before importing.
func BuildTemplate(c Collection) (*excelize.File, error) {
	f := excelize.NewFile()
	name := truncateSheetName(Label(c))
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", name, err)
	}

	cols := Columns(c)
	for j, col := range cols {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(name, cell, col.Label); err != nil {
			return nil, err
		}
	}

	for r, row := range templateRows(c) {
		for j, value := range row {
			if j >= len(cols) {
				break
			}
			cell, err := excelize.CoordinatesToCellName(j+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, exportCellValue(value)); err != nil {
				return nil, err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(name, "A", lastCol, columnWidth); err != nil {
		return nil, err
	}

	return f, nil
}

func templateRows(c Collection) [][]interface{} {
	switch c {
	case Products:
		return [][]interface{}{
			{"Arroz Integral", "Marca X", 100, "kg", "2025-12-31", 5.99, 10, "disponivel"},
			{"Feijão Preto", "Marca Y", 50, "kg", "2025-06-30", 8.50, 5, "disponivel"},
		}
	case StorageLocations:
		return [][]interface{}{
			{"Almoxarifado Central", "Local principal de armazenamento"},
			{"Depósito Secundário", "Depósito auxiliar"},
		}
	case Invoices:
		return [][]interface{}{
			{"NF-001", "2025-01-15", 1500.00},
			{"NF-002", "2025-01-20", 2300.50},
		}
	case ProductEntries:
		return [][]interface{}{
			{"2025-01-15", "uuid-do-produto", 100, "Recebimento de compra"},
		}
	case ProductExits:
		return [][]interface{}{
			{"2025-01-15", "uuid-do-produto", 10, "Distribuição para unidade"},
		}
	case ShoppingList:
		return [][]interface{}{
			{"Arroz", 50, "kg", "alta", false},
			{"Feijão", 30, "kg", "media", false},
		}
	default:
		return nil
	}
}
