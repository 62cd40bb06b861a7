// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Produto       string              `json:"produto" gorm:"size:255;not null;index"`
	Marca         string              `json:"marca" gorm:"size:255;not null"`
	Quantidade    decimal.Decimal     `json:"quantidade" gorm:"type:decimal(12,3);not null;default:0"`
	Unidade       UnitType            `json:"unidade" gorm:"type:varchar(20);default:'unidade'"`
	Validade      *Date               `json:"validade" gorm:"type:date"`
	Valor         decimal.NullDecimal `json:"valor" gorm:"type:decimal(12,2)"`
	EstoqueMinimo decimal.Decimal     `json:"estoque_minimo" gorm:"type:decimal(12,3);default:0"`
	LocalID       *uuid.UUID          `json:"local_id" gorm:"type:uuid;index"`
	Status        ProductStatus       `json:"status" gorm:"type:varchar(20);default:'disponivel';index"`
	UpdatedAt     time.Time           `json:"updated_at"`

	// Relationships
	Local *StorageLocation `json:"storage_locations,omitempty" gorm:"foreignKey:LocalID"`
}

// DerivedStatus recomputes the stock status from the current quantity against
// the minimum threshold. Callers persist the result whenever the quantity
// changes; the interchange codecs pass the stored value through untouched.
func (p *Product) DerivedStatus() ProductStatus {
	if p.Quantidade.Sign() <= 0 {
		return ProductStatusOutOfStock
	}
	if p.Quantidade.LessThanOrEqual(p.EstoqueMinimo) {
		return ProductStatusLowStock
	}
	return ProductStatusAvailable
}
