// internal/handlers/data.go
package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/almoxdev/estoque-backend/internal/i18n"
	"github.com/almoxdev/estoque-backend/internal/interchange"
	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/services"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

// maxUploadSize bounds import and restore payloads (32 MB).
const maxUploadSize = 32 << 20

// DataHandler exposes the spreadsheet/PDF export, template, backup and
// restore endpoints. Every operation records its outcome as a notification.
type DataHandler struct {
	importService       *services.ImportService
	exportService       *services.ExportService
	notificationService *services.NotificationService
}

func NewDataHandler(importService *services.ImportService, exportService *services.ExportService, notificationService *services.NotificationService) *DataHandler {
	return &DataHandler{
		importService:       importService,
		exportService:       exportService,
		notificationService: notificationService,
	}
}

// parseSelection reads the comma-separated "tables" parameter from the query
// string or, for multipart requests, the form body.
func parseSelection(c *gin.Context) []interchange.Collection {
	raw := c.Query("tables")
	if raw == "" {
		raw = c.PostForm("tables")
	}

	var selection []interchange.Collection
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		selection = append(selection, interchange.Collection(part))
	}
	return selection
}

func readUpload(c *gin.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	if fileHeader.Size > maxUploadSize {
		return nil, errors.New("file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, maxUploadSize))
}

// POST /data/import
func (h *DataHandler) ImportWorkbook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	fileBytes, err := readUpload(c, "file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataInvalidFile), err.Error())
		return
	}

	report, err := h.importService.ImportWorkbook(c.Request.Context(), fileBytes)
	if err != nil {
		var formatErr *interchange.FormatError
		if errors.As(err, &formatErr) {
			h.notificationService.Notify(
				i18n.T(lang, i18n.KeyDataImportError),
				formatErr.Error(),
				models.SeverityError,
			)
			utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyDataInvalidFile))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	message := i18n.T(lang, i18n.KeyDataImportSuccess, report.Imported)
	severity := models.SeveritySuccess
	body := report.Summary()
	if report.HasFailures() {
		message = i18n.T(lang, i18n.KeyDataImportWarnings, report.Imported, report.Failed+len(report.Issues))
		severity = models.SeverityWarning
		body = report.Failures()
	}
	h.notificationService.Notify(message, body, severity)

	utils.SuccessResponse(c, gin.H{
		"message": message,
		"report":  report,
	})
}

// GET /data/export
func (h *DataHandler) ExportWorkbook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	artifact, err := h.exportService.ExportWorkbook(c.Request.Context(), parseSelection(c))
	if err != nil {
		h.respondExportError(c, lang, err)
		return
	}

	h.notificationService.Notify(i18n.T(lang, i18n.KeyDataExportSuccess), artifact.Filename, models.SeveritySuccess)
	utils.FileResponse(c, artifact.Filename, artifact.ContentType, artifact.Data)
}

// GET /data/export/pdf
func (h *DataHandler) ExportPDF(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	artifact, err := h.exportService.ExportPDF(c.Request.Context(), parseSelection(c))
	if err != nil {
		h.respondExportError(c, lang, err)
		return
	}

	h.notificationService.Notify(i18n.T(lang, i18n.KeyDataPDFSuccess), artifact.Filename, models.SeveritySuccess)
	utils.FileResponse(c, artifact.Filename, artifact.ContentType, artifact.Data)
}

// GET /data/backup
func (h *DataHandler) ExportBackup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	artifact, err := h.exportService.ExportBackup(c.Request.Context())
	if err != nil {
		h.notificationService.Notify(i18n.T(lang, i18n.KeyDataExportError), err.Error(), models.SeverityError)
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	h.notificationService.Notify(i18n.T(lang, i18n.KeyDataBackupSuccess), artifact.Filename, models.SeveritySuccess)
	utils.FileResponse(c, artifact.Filename, artifact.ContentType, artifact.Data)
}

// POST /data/restore
func (h *DataHandler) RestoreBackup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	raw, err := readUpload(c, "file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataInvalidFile), err.Error())
		return
	}

	report, err := h.importService.ImportBackup(c.Request.Context(), raw, parseSelection(c))
	if err != nil {
		if errors.Is(err, interchange.ErrNoSelection) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataNoSelection), nil)
			return
		}
		var formatErr *interchange.FormatError
		if errors.As(err, &formatErr) {
			h.notificationService.Notify(
				i18n.T(lang, i18n.KeyDataRestoreError),
				formatErr.Error(),
				models.SeverityError,
			)
			utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyDataInvalidFile))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	message := i18n.T(lang, i18n.KeyDataRestoreSuccess, report.Imported)
	severity := models.SeveritySuccess
	body := report.Summary()
	if report.HasFailures() {
		message = i18n.T(lang, i18n.KeyDataRestoreWarnings, report.Imported, report.Failed)
		severity = models.SeverityWarning
		body = report.Failures()
	}
	h.notificationService.Notify(message, body, severity)

	utils.SuccessResponse(c, gin.H{
		"message": message,
		"report":  report,
	})
}

// GET /data/templates/:table
func (h *DataHandler) DownloadTemplate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	artifact, err := h.exportService.ExportTemplate(interchange.Collection(c.Param("table")))
	if err != nil {
		var formatErr *interchange.FormatError
		if errors.As(err, &formatErr) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataUnknownSheet), formatErr.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.FileResponse(c, artifact.Filename, artifact.ContentType, artifact.Data)
}

func (h *DataHandler) respondExportError(c *gin.Context, lang string, err error) {
	if errors.Is(err, interchange.ErrNoSelection) {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataNoSelection), nil)
		return
	}
	var formatErr *interchange.FormatError
	if errors.As(err, &formatErr) {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyDataUnknownSheet), formatErr.Error())
		return
	}
	h.notificationService.Notify(i18n.T(lang, i18n.KeyDataExportError), err.Error(), models.SeverityError)
	utils.InternalErrorResponse(c, err.Error())
}
