// internal/services/report_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/interchange"
	"github.com/almoxdev/estoque-backend/internal/models"
)

// ReportService builds the dashboard reports, as JSON rows or as delimited
// text downloads.
type ReportService struct {
	db *gorm.DB
}

type ReportKind string

const (
	ReportStock    ReportKind = "estoque"
	ReportMovement ReportKind = "movimentacoes"
	ReportInvoices ReportKind = "notas_fiscais"
	ReportLowStock ReportKind = "estoque_baixo"
	ReportExpiring ReportKind = "vencimentos"
)

// movementLimit bounds the movements report to the most recent records,
// entries and exits combined.
const movementLimit = 50

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) Build(kind ReportKind) ([]interchange.Record, error) {
	switch kind {
	case ReportStock:
		return s.stockReport()
	case ReportMovement:
		return s.movementReport()
	case ReportInvoices:
		return s.invoiceReport()
	case ReportLowStock:
		return s.lowStockReport()
	case ReportExpiring:
		return s.expiringReport()
	default:
		return nil, fmt.Errorf("unknown report: %s", kind)
	}
}

// BuildCSV renders a report as a delimited text artifact.
func (s *ReportService) BuildCSV(kind ReportKind) (*Artifact, error) {
	rows, err := s.Build(kind)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyReport
	}

	content := interchange.DelimitedText(reportFields(kind), rows)

	return &Artifact{
		Filename:    fmt.Sprintf("relatorio_%s_%s.csv", kind, time.Now().Format("2006-01-02")),
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(content),
	}, nil
}

func (s *ReportService) stockReport() ([]interchange.Record, error) {
	var products []models.Product
	if err := s.db.Preload("Local").Order("produto ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	rows := make([]interchange.Record, 0, len(products))
	for _, p := range products {
		local := ""
		if p.Local != nil {
			local = p.Local.Name
		}
		rows = append(rows, interchange.Record{
			"produto":        p.Produto,
			"marca":          p.Marca,
			"quantidade":     p.Quantidade,
			"unidade":        p.Unidade,
			"estoque_minimo": p.EstoqueMinimo,
			"status":         p.Status,
			"local":          local,
			"validade":       p.Validade,
		})
	}
	return rows, nil
}

func (s *ReportService) movementReport() ([]interchange.Record, error) {
	var entries []models.ProductEntry
	if err := s.db.Preload("Product").Order("dia DESC, created_at DESC").
		Limit(movementLimit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	var exits []models.ProductExit
	if err := s.db.Preload("Product").Order("dia DESC, created_at DESC").
		Limit(movementLimit).Find(&exits).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch exits: %w", err)
	}

	type movement struct {
		dia time.Time
		rec interchange.Record
	}
	merged := make([]movement, 0, len(entries)+len(exits))
	for _, e := range entries {
		merged = append(merged, movement{e.Dia.Time, interchange.Record{
			"tipo":       "entrada",
			"dia":        e.Dia,
			"produto":    movementProduct(e.Product),
			"quantidade": e.Quantidade,
			"detalhe":    deref(e.Observacao),
		}})
	}
	for _, e := range exits {
		merged = append(merged, movement{e.Dia.Time, interchange.Record{
			"tipo":       "saida",
			"dia":        e.Dia,
			"produto":    movementProduct(e.Product),
			"quantidade": e.Quantidade,
			"detalhe":    deref(e.Motivo),
		}})
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].dia.After(merged[j].dia) })
	if len(merged) > movementLimit {
		merged = merged[:movementLimit]
	}

	rows := make([]interchange.Record, 0, len(merged))
	for _, m := range merged {
		rows = append(rows, m.rec)
	}
	return rows, nil
}

func (s *ReportService) invoiceReport() ([]interchange.Record, error) {
	var invoices []models.Invoice
	if err := s.db.Preload("Local").Order("data DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	rows := make([]interchange.Record, 0, len(invoices))
	for _, inv := range invoices {
		local := ""
		if inv.Local != nil {
			local = inv.Local.Name
		}
		rows = append(rows, interchange.Record{
			"numero":      inv.Numero,
			"data":        inv.Data,
			"valor_total": inv.ValorTotal,
			"local":       local,
		})
	}
	return rows, nil
}

func (s *ReportService) lowStockReport() ([]interchange.Record, error) {
	var products []models.Product
	if err := s.db.Preload("Local").
		Where("quantidade <= estoque_minimo").
		Order("quantidade ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	rows := make([]interchange.Record, 0, len(products))
	for _, p := range products {
		rows = append(rows, interchange.Record{
			"produto":        p.Produto,
			"quantidade":     p.Quantidade,
			"estoque_minimo": p.EstoqueMinimo,
			"unidade":        p.Unidade,
			"status":         p.Status,
		})
	}
	return rows, nil
}

func (s *ReportService) expiringReport() ([]interchange.Record, error) {
	cutoff := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	var products []models.Product
	if err := s.db.Preload("Local").
		Where("validade IS NOT NULL AND validade <= ?", cutoff).
		Order("validade ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	rows := make([]interchange.Record, 0, len(products))
	for _, p := range products {
		rows = append(rows, interchange.Record{
			"produto":    p.Produto,
			"validade":   p.Validade,
			"quantidade": p.Quantidade,
			"unidade":    p.Unidade,
		})
	}
	return rows, nil
}

func reportFields(kind ReportKind) []string {
	switch kind {
	case ReportStock:
		return []string{"produto", "marca", "quantidade", "unidade", "estoque_minimo", "status", "local", "validade"}
	case ReportMovement:
		return []string{"tipo", "dia", "produto", "quantidade", "detalhe"}
	case ReportInvoices:
		return []string{"numero", "data", "valor_total", "local"}
	case ReportLowStock:
		return []string{"produto", "quantidade", "estoque_minimo", "unidade", "status"}
	case ReportExpiring:
		return []string{"produto", "validade", "quantidade", "unidade"}
	default:
		return nil
	}
}

func movementProduct(p *models.Product) string {
	if p == nil {
		return ""
	}
	return p.Produto
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
