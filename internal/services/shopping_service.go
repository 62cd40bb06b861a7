// internal/services/shopping_service.go
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

type ShoppingService struct {
	db *gorm.DB
}

type CreateShoppingItemRequest struct {
	Produto    string          `json:"produto" validate:"required,min=2,max=255"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Unidade    models.UnitType `json:"unidade" validate:"required,oneof=unidade kg litro caixa pacote"`
	Prioridade models.Priority `json:"prioridade" validate:"required,oneof=alta media baixa"`
}

type UpdateShoppingItemRequest struct {
	Produto    *string          `json:"produto,omitempty" validate:"omitempty,min=2,max=255"`
	Quantidade *decimal.Decimal `json:"quantidade,omitempty"`
	Unidade    *models.UnitType `json:"unidade,omitempty" validate:"omitempty,oneof=unidade kg litro caixa pacote"`
	Prioridade *models.Priority `json:"prioridade,omitempty" validate:"omitempty,oneof=alta media baixa"`
	Comprado   *bool            `json:"comprado,omitempty"`
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

func (s *ShoppingService) CreateItem(req *CreateShoppingItemRequest, createdBy *uuid.UUID) (*models.ShoppingListItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item := &models.ShoppingListItem{
		Produto:    req.Produto,
		Quantidade: req.Quantidade,
		Unidade:    req.Unidade,
		Prioridade: req.Prioridade,
	}
	item.CreatedBy = createdBy

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create shopping list item: %w", err)
	}

	return item, nil
}

func (s *ShoppingService) GetItem(id uuid.UUID) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &item, nil
}

func (s *ShoppingService) UpdateItem(id uuid.UUID, req *UpdateShoppingItemRequest) (*models.ShoppingListItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item models.ShoppingListItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Produto != nil {
		updates["produto"] = *req.Produto
	}
	if req.Quantidade != nil {
		updates["quantidade"] = *req.Quantidade
	}
	if req.Unidade != nil {
		updates["unidade"] = *req.Unidade
	}
	if req.Prioridade != nil {
		updates["prioridade"] = *req.Prioridade
	}
	if req.Comprado != nil {
		updates["comprado"] = *req.Comprado
	}

	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update shopping list item: %w", err)
	}

	return &item, nil
}

func (s *ShoppingService) DeleteItem(id uuid.UUID) error {
	var item models.ShoppingListItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete shopping list item: %w", err)
	}

	return nil
}

func (s *ShoppingService) TogglePurchased(id uuid.UUID) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&item).UpdateColumn("comprado", !item.Comprado).Error; err != nil {
		return nil, fmt.Errorf("failed to update shopping list item: %w", err)
	}

	item.Comprado = !item.Comprado
	return &item, nil
}

func (s *ShoppingService) ListItems(params utils.PaginationParams, pending bool) ([]models.ShoppingListItem, int64, error) {
	query := s.db.Model(&models.ShoppingListItem{})

	if pending {
		query = query.Where("comprado = ?", false)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(produto) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shopping list items: %w", err)
	}

	allowedSortFields := []string{"created_at", "produto", "prioridade"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var items []models.ShoppingListItem
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch shopping list items: %w", err)
	}

	return items, total, nil
}
