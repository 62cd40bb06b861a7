// internal/handlers/movement.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/almoxdev/estoque-backend/internal/i18n"
	"github.com/almoxdev/estoque-backend/internal/services"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type MovementHandler struct {
	movementService *services.MovementService
}

func NewMovementHandler(movementService *services.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// GET /entries
func (h *MovementHandler) GetEntries(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.movementService.ListEntries(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(entries, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /entries
func (h *MovementHandler) CreateEntry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	entry, err := h.movementService.CreateEntry(&req, currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEntryCreated),
		"entry":   entry,
	})
}

// DELETE /entries/:id
func (h *MovementHandler) DeleteEntry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.movementService.DeleteEntry(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "entry")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEntryDeleted),
	})
}

// GET /exits
func (h *MovementHandler) GetExits(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	exits, total, err := h.movementService.ListExits(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(exits, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /exits
func (h *MovementHandler) CreateExit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	exit, err := h.movementService.CreateExit(&req, currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyExitInsufficient))
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyExitCreated),
		"exit":    exit,
	})
}

// DELETE /exits/:id
func (h *MovementHandler) DeleteExit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.movementService.DeleteExit(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "exit")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyExitDeleted),
	})
}
