// internal/models/shopping_list.go
package models

import (
	"github.com/shopspring/decimal"
)

type ShoppingListItem struct {
	BaseModel
	Produto    string          `json:"produto" gorm:"size:255;not null"`
	Quantidade decimal.Decimal `json:"quantidade" gorm:"type:decimal(12,3);not null"`
	Unidade    UnitType        `json:"unidade" gorm:"type:varchar(20);default:'unidade'"`
	Prioridade Priority        `json:"prioridade" gorm:"type:varchar(20);default:'media'"`
	Comprado   bool            `json:"comprado" gorm:"default:false"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list"
}
