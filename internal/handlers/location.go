// internal/handlers/location.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/almoxdev/estoque-backend/internal/i18n"
	"github.com/almoxdev/estoque-backend/internal/services"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// GET /storage-locations
func (h *LocationHandler) GetLocations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	locations, total, err := h.locationService.ListLocations(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(locations, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /storage-locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	location, err := h.locationService.CreateLocation(&req, currentUserID(c))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyLocationCreated),
		"location": location,
	})
}

// GET /storage-locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationService.GetLocation(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "location")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"location": location,
	})
}

// PUT /storage-locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	location, err := h.locationService.UpdateLocation(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "location")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyLocationUpdated),
		"location": location,
	})
}

// DELETE /storage-locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "location")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLocationDeleted),
	})
}
