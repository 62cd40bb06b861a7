// internal/models/storage_location.go
package models

type StorageLocation struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:255;not null;index"`
	Description *string `json:"description" gorm:"type:text"`
}
