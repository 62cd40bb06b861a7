// internal/services/invoice_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type InvoiceService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateInvoiceRequest struct {
	Numero     string              `json:"numero" validate:"required,min=1,max=100"`
	Data       models.Date         `json:"data" validate:"required"`
	ValorTotal decimal.NullDecimal `json:"valor_total,omitempty"`
	LocalID    *uuid.UUID          `json:"local_id,omitempty"`
	QrCode     *string             `json:"qr_code,omitempty"`
}

type UpdateInvoiceRequest struct {
	Numero     *string              `json:"numero,omitempty" validate:"omitempty,min=1,max=100"`
	Data       *models.Date         `json:"data,omitempty"`
	ValorTotal *decimal.NullDecimal `json:"valor_total,omitempty"`
	LocalID    *uuid.UUID           `json:"local_id,omitempty"`
	QrCode     *string              `json:"qr_code,omitempty"`
}

func NewInvoiceService(db *gorm.DB, storageService *StorageService) *InvoiceService {
	return &InvoiceService{
		db:             db,
		storageService: storageService,
	}
}

func (s *InvoiceService) CreateInvoice(req *CreateInvoiceRequest, createdBy *uuid.UUID) (*models.Invoice, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	invoice := &models.Invoice{
		Numero:     req.Numero,
		Data:       req.Data,
		ValorTotal: req.ValorTotal,
		LocalID:    req.LocalID,
		QrCode:     req.QrCode,
	}
	invoice.CreatedBy = createdBy

	if err := s.db.Create(invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.db.Preload("Local").First(invoice, "id = ?", invoice.ID)

	return invoice, nil
}

func (s *InvoiceService) GetInvoice(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Preload("Local").First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &invoice, nil
}

func (s *InvoiceService) UpdateInvoice(id uuid.UUID, req *UpdateInvoiceRequest) (*models.Invoice, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Numero != nil {
		updates["numero"] = *req.Numero
	}
	if req.Data != nil {
		updates["data"] = *req.Data
	}
	if req.ValorTotal != nil {
		updates["valor_total"] = *req.ValorTotal
	}
	if req.LocalID != nil {
		updates["local_id"] = *req.LocalID
	}
	if req.QrCode != nil {
		updates["qr_code"] = *req.QrCode
	}

	if err := s.db.Model(&invoice).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.db.Preload("Local").First(&invoice, "id = ?", id)

	return &invoice, nil
}

func (s *InvoiceService) DeleteInvoice(id uuid.UUID) error {
	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Attached documents go with the invoice
	if s.storageService != nil {
		if invoice.PdfFilePath != nil {
			s.storageService.DeleteFile(*invoice.PdfFilePath)
		}
		if invoice.XmlFilePath != nil {
			s.storageService.DeleteFile(*invoice.XmlFilePath)
		}
	}

	if err := s.db.Delete(&invoice).Error; err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	return nil
}

func (s *InvoiceService) ListInvoices(params utils.PaginationParams) ([]models.Invoice, int64, error) {
	query := s.db.Model(&models.Invoice{}).Preload("Local")

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(numero) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	allowedSortFields := []string{"created_at", "data", "numero", "valor_total"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	return invoices, total, nil
}

// AttachDocument uploads an invoice PDF or XML and stores the resulting key
// on the invoice. kind must be "pdf" or "xml".
func (s *InvoiceService) AttachDocument(id uuid.UUID, kind string, file multipart.File, header *multipart.FileHeader) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var category, column string
	var previous *string
	switch kind {
	case "pdf":
		category, column, previous = "invoice_pdf", "pdf_file_path", invoice.PdfFilePath
	case "xml":
		category, column, previous = "invoice_xml", "xml_file_path", invoice.XmlFilePath
	default:
		return nil, fmt.Errorf("unsupported document kind: %s", kind)
	}

	options := s.storageService.GetDefaultUploadOptions(category)
	result, err := s.storageService.UploadFile(file, header, options)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	if err := s.db.Model(&invoice).UpdateColumn(column, result.Key).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if previous != nil {
		s.storageService.DeleteFile(*previous)
	}

	s.db.Preload("Local").First(&invoice, "id = ?", id)

	return &invoice, nil
}

// DocumentURL returns a short-lived download link for an attached invoice
// document. Locally stored files are served straight from their key.
func (s *InvoiceService) DocumentURL(id uuid.UUID, kind string) (string, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	var key *string
	switch kind {
	case "pdf":
		key = invoice.PdfFilePath
	case "xml":
		key = invoice.XmlFilePath
	default:
		return "", fmt.Errorf("unsupported document kind: %s", kind)
	}
	if key == nil {
		return "", ErrNotFound
	}

	url, err := s.storageService.GeneratePresignedURL(*key, 15*time.Minute)
	if err != nil {
		// Local fallback keeps the stored path servable as-is
		return "/" + *key, nil
	}
	return url, nil
}
