// internal/interchange/pdf.go
package interchange

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 14.0
	// A section starting below this line goes to a fresh page instead.
	sectionBreakY = 250.0

	developerCredit = "Desenvolvido por AlmoxDev"
)

// DocumentHeader carries the organization identity printed at the top of the
// first page and in the footer of every page. All fields are optional.
type DocumentHeader struct {
	CompanyName  string
	CNPJ         string
	Logo         []byte // PNG or JPEG bytes
	Responsaveis []string
	GeneratedAt  time.Time
}

// BuildPDF renders one titled, striped table per collection into a single
// paginated A4 document.
func BuildPDF(tables []Table, header DocumentHeader) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(pageMargin, 10, pageMargin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(100, 100, 100)

		left := developerCredit
		if len(header.Responsaveis) > 0 {
			left = "Responsáveis: " + strings.Join(header.Responsaveis, ", ") + "  -  " + left
		}
		pdf.CellFormat(150, 5, tr(left), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Página %d de ", pdf.PageNo()))+"{nb}", "", 0, "R", false, 0, "")
	})
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	writeDocumentHeader(pdf, tr, header)

	for i, t := range tables {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 7, tr(Label(t.Collection)), "", 1, "L", false, 0, "")
		pdf.Ln(1)

		writeSectionTable(pdf, tr, t)
		pdf.Ln(10)

		if pdf.GetY() > sectionBreakY && i < len(tables)-1 {
			pdf.AddPage()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDocumentHeader(pdf *gofpdf.Fpdf, tr func(string) string, header DocumentHeader) {
	if imgType := logoImageType(header.Logo); imgType != "" {
		opts := gofpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader("org-logo", opts, bytes.NewReader(header.Logo))
		if pdf.Err() {
			// A broken logo must not take the whole export down.
			pdf.ClearError()
		} else {
			pdf.ImageOptions("org-logo", pageMargin, 10, 25, 25, false, opts, 0, "")
		}
	}

	title := header.CompanyName
	if title == "" {
		title = "Exportação de Dados"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(45, 20, tr(title))

	pdf.SetFont("Helvetica", "", 10)
	if header.CNPJ != "" {
		pdf.Text(45, 27, "CNPJ: "+header.CNPJ)
	}
	generated := header.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.Text(45, 34, tr("Data: "+generated.Format("02/01/2006")+" às "+generated.Format("15:04")))

	pdf.SetY(45)
}

// logoImageType sniffs the stored logo bytes. Uploads are restricted to PNG
// and JPEG; anything else is left out of the document.
func logoImageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "JPG"
	default:
		return ""
	}
}

func writeSectionTable(pdf *gofpdf.Fpdf, tr func(string) string, t Table) {
	cols := Columns(t.Collection)
	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pageMargin) / float64(len(cols))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	for _, col := range cols {
		pdf.CellFormat(colWidth, 6, tr(col.Label), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 245)
	for i, rec := range t.Rows {
		fill := i%2 == 1
		for _, col := range cols {
			pdf.CellFormat(colWidth, 5, tr(printableValue(rec[col.Key])), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

func printableValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case bool:
		if val {
			return boolTrueLabel
		}
		return boolFalseLabel
	default:
		return formatValue(v)
	}
}
