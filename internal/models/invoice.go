// internal/models/invoice.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	BaseModel
	Numero      string              `json:"numero" gorm:"size:100;not null;index"`
	Data        Date                `json:"data" gorm:"type:date;not null"`
	ValorTotal  decimal.NullDecimal `json:"valor_total" gorm:"type:decimal(12,2)"`
	LocalID     *uuid.UUID          `json:"local_id" gorm:"type:uuid;index"`
	PdfFilePath *string             `json:"pdf_file_path" gorm:"size:512"`
	XmlFilePath *string             `json:"xml_file_path" gorm:"size:512"`
	QrCode      *string             `json:"qr_code" gorm:"type:text"`

	// Relationships
	Local *StorageLocation `json:"storage_locations,omitempty" gorm:"foreignKey:LocalID"`
}
