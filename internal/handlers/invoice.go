// internal/handlers/invoice.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/almoxdev/estoque-backend/internal/i18n"
	"github.com/almoxdev/estoque-backend/internal/services"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// GET /invoices
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	invoices, total, err := h.invoiceService.ListInvoices(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(invoices, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(&req, currentUserID(c))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceCreated),
		"invoice": invoice,
	})
}

// GET /invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "invoice")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"invoice": invoice,
	})
}

// PUT /invoices/:id
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "invoice")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceUpdated),
		"invoice": invoice,
	})
}

// DELETE /invoices/:id
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "invoice")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceDeleted),
	})
}

// POST /invoices/:id/documents/:kind
func (h *InvoiceHandler) UploadDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	kind := c.Param("kind")
	if kind != "pdf" && kind != "xml" {
		utils.BadRequestResponse(c, "Document kind must be pdf or xml", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	defer file.Close()

	invoice, err := h.invoiceService.AttachDocument(id, kind, file, fileHeader)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "invoice")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceUploaded),
		"invoice": invoice,
	})
}

// GET /invoices/:id/documents/:kind
func (h *InvoiceHandler) GetDocumentURL(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	kind := c.Param("kind")
	if kind != "pdf" && kind != "xml" {
		utils.BadRequestResponse(c, "Document kind must be pdf or xml", nil)
		return
	}

	url, err := h.invoiceService.DocumentURL(id, kind)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "document")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url})
}
