// internal/handlers/report.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/almoxdev/estoque-backend/internal/i18n"
	"github.com/almoxdev/estoque-backend/internal/services"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parseReportKind(c *gin.Context) (services.ReportKind, bool) {
	lang := utils.GetLangFromContext(c)
	kind := services.ReportKind(c.Param("kind"))
	switch kind {
	case services.ReportStock, services.ReportMovement, services.ReportInvoices,
		services.ReportLowStock, services.ReportExpiring:
		return kind, true
	}
	utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReportUnknown), nil)
	return "", false
}

// GET /reports/:kind
func (h *ReportHandler) GetReport(c *gin.Context) {
	kind, ok := parseReportKind(c)
	if !ok {
		return
	}

	rows, err := h.reportService.Build(kind)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"kind": kind,
		"rows": rows,
	})
}

// GET /reports/:kind/csv
func (h *ReportHandler) DownloadReportCSV(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	kind, ok := parseReportKind(c)
	if !ok {
		return
	}

	artifact, err := h.reportService.BuildCSV(kind)
	if err != nil {
		if errors.Is(err, services.ErrEmptyReport) {
			utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyReportEmpty))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.FileResponse(c, artifact.Filename, artifact.ContentType, artifact.Data)
}
