// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Produto       string              `json:"produto" validate:"required,min=2,max=255"`
	Marca         string              `json:"marca" validate:"required,min=1,max=255"`
	Quantidade    decimal.Decimal     `json:"quantidade"`
	Unidade       models.UnitType     `json:"unidade" validate:"required,oneof=unidade kg litro caixa pacote"`
	Validade      *models.Date        `json:"validade,omitempty"`
	Valor         decimal.NullDecimal `json:"valor,omitempty"`
	EstoqueMinimo decimal.Decimal     `json:"estoque_minimo"`
	LocalID       *uuid.UUID          `json:"local_id,omitempty"`
}

type UpdateProductRequest struct {
	Produto       *string              `json:"produto,omitempty" validate:"omitempty,min=2,max=255"`
	Marca         *string              `json:"marca,omitempty"`
	Quantidade    *decimal.Decimal     `json:"quantidade,omitempty"`
	Unidade       *models.UnitType     `json:"unidade,omitempty" validate:"omitempty,oneof=unidade kg litro caixa pacote"`
	Validade      *models.Date         `json:"validade,omitempty"`
	Valor         *decimal.NullDecimal `json:"valor,omitempty"`
	EstoqueMinimo *decimal.Decimal     `json:"estoque_minimo,omitempty"`
	LocalID       *uuid.UUID           `json:"local_id,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Status   *models.ProductStatus `json:"status,omitempty"`
	LocalID  *uuid.UUID            `json:"local_id,omitempty"`
	LowStock bool                  `json:"low_stock,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest, createdBy *uuid.UUID) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Produto:       req.Produto,
		Marca:         req.Marca,
		Quantidade:    req.Quantidade,
		Unidade:       req.Unidade,
		Validade:      req.Validade,
		Valor:         req.Valor,
		EstoqueMinimo: req.EstoqueMinimo,
		LocalID:       req.LocalID,
	}
	product.CreatedBy = createdBy
	product.Status = product.DerivedStatus()

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Local").First(product, "id = ?", product.ID)

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Local").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Produto != nil {
		updates["produto"] = *req.Produto
	}
	if req.Marca != nil {
		updates["marca"] = *req.Marca
	}
	if req.Quantidade != nil {
		updates["quantidade"] = *req.Quantidade
	}
	if req.Unidade != nil {
		updates["unidade"] = *req.Unidade
	}
	if req.Validade != nil {
		updates["validade"] = *req.Validade
	}
	if req.Valor != nil {
		updates["valor"] = *req.Valor
	}
	if req.EstoqueMinimo != nil {
		updates["estoque_minimo"] = *req.EstoqueMinimo
	}
	if req.LocalID != nil {
		updates["local_id"] = *req.LocalID
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Quantity or minimum may have changed, recompute the stock status
	if err := s.RecomputeStatus(s.db, id); err != nil {
		return nil, err
	}

	s.db.Preload("Local").First(&product, "id = ?", id)

	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Local")

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.LocalID != nil {
		query = query.Where("local_id = ?", *params.LocalID)
	}

	if params.LowStock {
		query = query.Where("quantidade <= estoque_minimo")
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(produto) LIKE ? OR LOWER(marca) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "produto", "quantidade", "validade"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// RecomputeStatus rereads the product quantity and persists the status
// derived from it. Runs inside the caller's transaction when one is given.
func (s *ProductService) RecomputeStatus(tx *gorm.DB, id uuid.UUID) error {
	var product models.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	status := product.DerivedStatus()
	if status == product.Status {
		return nil
	}

	if err := tx.Model(&product).UpdateColumn("status", status).Error; err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}

	return nil
}
