// internal/services/location_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type LocationService struct {
	db *gorm.DB
}

type CreateLocationRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description *string `json:"description,omitempty"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description,omitempty"`
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) CreateLocation(req *CreateLocationRequest, createdBy *uuid.UUID) (*models.StorageLocation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	location := &models.StorageLocation{
		Name:        req.Name,
		Description: req.Description,
	}
	location.CreatedBy = createdBy

	if err := s.db.Create(location).Error; err != nil {
		return nil, fmt.Errorf("failed to create storage location: %w", err)
	}

	return location, nil
}

func (s *LocationService) GetLocation(id uuid.UUID) (*models.StorageLocation, error) {
	var location models.StorageLocation
	if err := s.db.First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &location, nil
}

func (s *LocationService) UpdateLocation(id uuid.UUID, req *UpdateLocationRequest) (*models.StorageLocation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var location models.StorageLocation
	if err := s.db.First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if err := s.db.Model(&location).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update storage location: %w", err)
	}

	return &location, nil
}

func (s *LocationService) DeleteLocation(id uuid.UUID) error {
	var location models.StorageLocation
	if err := s.db.First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Products referencing the location keep their rows, the reference is cleared
	if err := s.db.Model(&models.Product{}).Where("local_id = ?", id).
		UpdateColumn("local_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach products: %w", err)
	}

	if err := s.db.Delete(&location).Error; err != nil {
		return fmt.Errorf("failed to delete storage location: %w", err)
	}

	return nil
}

func (s *LocationService) ListLocations(params utils.PaginationParams) ([]models.StorageLocation, int64, error) {
	query := s.db.Model(&models.StorageLocation{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count storage locations: %w", err)
	}

	allowedSortFields := []string{"created_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var locations []models.StorageLocation
	if err := query.Find(&locations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch storage locations: %w", err)
	}

	return locations, total, nil
}
