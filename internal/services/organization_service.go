// internal/services/organization_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

// OrganizationService manages the single organization settings row used on
// generated documents.
type OrganizationService struct {
	db             *gorm.DB
	storageService *StorageService
}

type UpdateOrganizationRequest struct {
	CompanyName  *string  `json:"company_name,omitempty" validate:"omitempty,min=2,max=255"`
	CNPJ         *string  `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	Address      *string  `json:"address,omitempty"`
	Responsaveis []string `json:"responsaveis,omitempty"`
}

func NewOrganizationService(db *gorm.DB, storageService *StorageService) *OrganizationService {
	return &OrganizationService{
		db:             db,
		storageService: storageService,
	}
}

func (s *OrganizationService) GetSettings() (*models.OrganizationSettings, error) {
	var settings models.OrganizationSettings
	if err := s.db.Order("created_at ASC").First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &settings, nil
}

func (s *OrganizationService) UpdateSettings(req *UpdateOrganizationRequest) (*models.OrganizationSettings, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		settings = &models.OrganizationSettings{}
		if err := s.db.Create(settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create organization settings: %w", err)
		}
	}

	updates := make(map[string]interface{})
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.CNPJ != nil {
		updates["cnpj"] = *req.CNPJ
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Responsaveis != nil {
		updates["responsaveis"] = pq.StringArray(req.Responsaveis)
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update organization settings: %w", err)
		}
	}

	s.db.First(settings, "id = ?", settings.ID)

	return settings, nil
}

func (s *OrganizationService) UploadLogo(file multipart.File, header *multipart.FileHeader) (*models.OrganizationSettings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		settings = &models.OrganizationSettings{}
		if err := s.db.Create(settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create organization settings: %w", err)
		}
	}

	if err := s.storageService.ValidateImage(file); err != nil {
		return nil, err
	}

	options := s.storageService.GetDefaultUploadOptions("logo")
	result, err := s.storageService.UploadFile(file, header, options)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	if err := s.db.Model(settings).UpdateColumn("logo_url", result.URL).Error; err != nil {
		return nil, fmt.Errorf("failed to update organization settings: %w", err)
	}

	settings.LogoURL = result.URL
	return settings, nil
}
