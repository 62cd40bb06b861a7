// internal/interchange/workbook.go
package interchange

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// Spreadsheet sheet names are capped at 31 characters by the format.
	sheetNameMax = 31
	columnWidth  = 20.0

	boolTrueLabel  = "Sim"
	boolFalseLabel = "Não"
)

// IssueReason classifies why a sheet produced no imported rows.
type IssueReason string

const (
	IssueUnknownSheet IssueReason = "unknown_sheet"
	IssueNoData       IssueReason = "no_data"
	IssueNoValidRows  IssueReason = "no_valid_rows"
)

// SheetIssue records a per-sheet import failure. Issues never abort the
// remaining sheets.
type SheetIssue struct {
	Sheet  string
	Reason IssueReason
}

// WorkbookData is the outcome of parsing an uploaded workbook: the sheets
// that yielded rows, plus one issue per sheet that did not.
type WorkbookData struct {
	Tables []Table
	Issues []SheetIssue
}

// BuildWorkbook renders one sheet per table, in the order given. The sheet
// name is the collection's display label truncated to the format limit; the
// first row holds the column labels from the registry.
func BuildWorkbook(tables []Table) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, t := range tables {
		name := truncateSheetName(Label(t.Collection))
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
			}
		}

		cols := Columns(t.Collection)
		for j, col := range cols {
			cell, err := excelize.CoordinatesToCellName(j+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, col.Label); err != nil {
				return nil, err
			}
		}

		for r, rec := range t.Rows {
			for j, col := range cols {
				cell, err := excelize.CoordinatesToCellName(j+1, r+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(name, cell, exportCellValue(rec[col.Key])); err != nil {
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
	}

	return f, nil
}

// ParseWorkbook reads every sheet of an uploaded workbook, resolving sheet
// names through the registry and mapping header labels back to field keys.
// Empty cells are dropped; the purchased flag is coerced from its exported
// label; rows that map to zero fields are discarded.
func ParseWorkbook(r io.Reader) (*WorkbookData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FormatError{Msg: fmt.Sprintf("unreadable workbook: %v", err)}
	}
	defer f.Close()

	result := &WorkbookData{}

	for _, sheet := range f.GetSheetList() {
		c, ok := ResolveSheet(sheet)
		if !ok {
			result.Issues = append(result.Issues, SheetIssue{Sheet: sheet, Reason: IssueUnknownSheet})
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			result.Issues = append(result.Issues, SheetIssue{Sheet: sheet, Reason: IssueNoData})
			continue
		}

		keyByLabel := make(map[string]string, len(Columns(c)))
		for _, col := range Columns(c) {
			keyByLabel[col.Label] = col.Key
		}

		header := rows[0]
		var records []Record
		for _, row := range rows[1:] {
			rec := Record{}
			for i, cell := range row {
				if i >= len(header) || cell == "" {
					continue
				}
				key, known := keyByLabel[header[i]]
				if !known {
					continue
				}
				if key == "comprado" {
					rec[key] = cell == boolTrueLabel || cell == "true" || cell == "TRUE"
				} else {
					rec[key] = cell
				}
			}
			if len(rec) > 0 {
				records = append(records, rec)
			}
		}

		if len(records) == 0 {
			result.Issues = append(result.Issues, SheetIssue{Sheet: sheet, Reason: IssueNoValidRows})
			continue
		}
		result.Tables = append(result.Tables, Table{Collection: c, Rows: records})
	}

	return result, nil
}

func exportCellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return boolTrueLabel
		}
		return boolFalseLabel
	default:
		return val
	}
}

func truncateSheetName(name string) string {
	runes := []rune(name)
	if len(runes) <= sheetNameMax {
		return name
	}
	return string(runes[:sheetNameMax])
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.NullDecimal:
		if !val.Valid {
			return ""
		}
		return val.Decimal.String()
	default:
		// Nullable model fields arrive as pointers. A nil pointer is an
		// absent value, not "<nil>".
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return ""
			}
			return formatValue(rv.Elem().Interface())
		}
		return fmt.Sprint(val)
	}
}
