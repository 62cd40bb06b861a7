// internal/models/movement.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductEntry records stock arriving at a location. Creating one increases
// the referenced product's quantity.
type ProductEntry struct {
	BaseModel
	Dia        Date            `json:"dia" gorm:"type:date;not null;index"`
	ProdutoID  *uuid.UUID      `json:"produto_id" gorm:"type:uuid;index"`
	LocalID    *uuid.UUID      `json:"local_id" gorm:"type:uuid;index"`
	Quantidade decimal.Decimal `json:"quantidade" gorm:"type:decimal(12,3);not null"`
	InvoiceID  *uuid.UUID      `json:"invoice_id" gorm:"type:uuid;index"`
	Observacao *string         `json:"observacao" gorm:"type:text"`

	// Relationships
	Product *Product         `json:"products,omitempty" gorm:"foreignKey:ProdutoID"`
	Local   *StorageLocation `json:"storage_locations,omitempty" gorm:"foreignKey:LocalID"`
	Invoice *Invoice         `json:"invoices,omitempty" gorm:"foreignKey:InvoiceID"`
}

// ProductExit records stock leaving a location. Creating one decreases the
// referenced product's quantity.
type ProductExit struct {
	BaseModel
	Dia        Date            `json:"dia" gorm:"type:date;not null;index"`
	ProdutoID  *uuid.UUID      `json:"produto_id" gorm:"type:uuid;index"`
	LocalID    *uuid.UUID      `json:"local_id" gorm:"type:uuid;index"`
	Quantidade decimal.Decimal `json:"quantidade" gorm:"type:decimal(12,3);not null"`
	Motivo     *string         `json:"motivo" gorm:"type:text"`

	// Relationships
	Product *Product         `json:"products,omitempty" gorm:"foreignKey:ProdutoID"`
	Local   *StorageLocation `json:"storage_locations,omitempty" gorm:"foreignKey:LocalID"`
}
