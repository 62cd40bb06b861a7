// internal/services/movement_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/almoxdev/estoque-backend/internal/database"
	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

// MovementService records stock entries and exits. Every movement that
// references a product adjusts its quantity and rederives its status inside
// a single transaction.
type MovementService struct {
	db             *gorm.DB
	productService *ProductService
}

type CreateEntryRequest struct {
	Dia        models.Date     `json:"dia" validate:"required"`
	ProdutoID  *uuid.UUID      `json:"produto_id,omitempty"`
	LocalID    *uuid.UUID      `json:"local_id,omitempty"`
	InvoiceID  *uuid.UUID      `json:"invoice_id,omitempty"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
	Observacao *string         `json:"observacao,omitempty"`
}

type CreateExitRequest struct {
	Dia        models.Date     `json:"dia" validate:"required"`
	ProdutoID  *uuid.UUID      `json:"produto_id,omitempty"`
	LocalID    *uuid.UUID      `json:"local_id,omitempty"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
	Motivo     *string         `json:"motivo,omitempty"`
}

func NewMovementService(db *gorm.DB, productService *ProductService) *MovementService {
	return &MovementService{
		db:             db,
		productService: productService,
	}
}

func (s *MovementService) CreateEntry(req *CreateEntryRequest, createdBy *uuid.UUID) (*models.ProductEntry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Quantidade.IsPositive() {
		return nil, errors.New("quantity must be positive")
	}

	entry := &models.ProductEntry{
		Dia:        req.Dia,
		ProdutoID:  req.ProdutoID,
		LocalID:    req.LocalID,
		InvoiceID:  req.InvoiceID,
		Quantidade: req.Quantidade,
		Observacao: req.Observacao,
	}
	entry.CreatedBy = createdBy

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		if req.ProdutoID != nil {
			if err := s.adjustQuantity(tx, *req.ProdutoID, req.Quantidade); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Product").Preload("Local").Preload("Invoice").First(entry, "id = ?", entry.ID)

	return entry, nil
}

func (s *MovementService) DeleteEntry(id uuid.UUID) error {
	var entry models.ProductEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Delete(&entry).Error; err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		if entry.ProdutoID != nil {
			if err := s.adjustQuantity(tx, *entry.ProdutoID, entry.Quantidade.Neg()); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *MovementService) CreateExit(req *CreateExitRequest, createdBy *uuid.UUID) (*models.ProductExit, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Quantidade.IsPositive() {
		return nil, errors.New("quantity must be positive")
	}

	exit := &models.ProductExit{
		Dia:        req.Dia,
		ProdutoID:  req.ProdutoID,
		LocalID:    req.LocalID,
		Quantidade: req.Quantidade,
		Motivo:     req.Motivo,
	}
	exit.CreatedBy = createdBy

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.ProdutoID != nil {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", *req.ProdutoID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("database error: %w", err)
			}

			if product.Quantidade.LessThan(req.Quantidade) {
				return ErrInsufficientStock
			}
		}

		if err := tx.Create(exit).Error; err != nil {
			return fmt.Errorf("failed to create exit: %w", err)
		}

		if req.ProdutoID != nil {
			if err := s.adjustQuantity(tx, *req.ProdutoID, req.Quantidade.Neg()); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Product").Preload("Local").First(exit, "id = ?", exit.ID)

	return exit, nil
}

func (s *MovementService) DeleteExit(id uuid.UUID) error {
	var exit models.ProductExit
	if err := s.db.First(&exit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Delete(&exit).Error; err != nil {
			return fmt.Errorf("failed to delete exit: %w", err)
		}

		if exit.ProdutoID != nil {
			if err := s.adjustQuantity(tx, *exit.ProdutoID, exit.Quantidade); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *MovementService) ListEntries(params utils.PaginationParams) ([]models.ProductEntry, int64, error) {
	query := s.db.Model(&models.ProductEntry{}).
		Preload("Product").Preload("Local").Preload("Invoice")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	allowedSortFields := []string{"created_at", "dia", "quantidade"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var entries []models.ProductEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch entries: %w", err)
	}

	return entries, total, nil
}

func (s *MovementService) ListExits(params utils.PaginationParams) ([]models.ProductExit, int64, error) {
	query := s.db.Model(&models.ProductExit{}).
		Preload("Product").Preload("Local")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count exits: %w", err)
	}

	allowedSortFields := []string{"created_at", "dia", "quantidade"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var exits []models.ProductExit
	if err := query.Find(&exits).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch exits: %w", err)
	}

	return exits, total, nil
}

func (s *MovementService) adjustQuantity(tx *gorm.DB, productID uuid.UUID, delta decimal.Decimal) error {
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("quantidade", gorm.Expr("quantidade + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to adjust product quantity: %w", err)
	}

	return s.productService.RecomputeStatus(tx, productID)
}
