// internal/models/organization.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// OrganizationSettings holds the identity printed on exported documents.
// A single row is expected; the service layer enforces that.
type OrganizationSettings struct {
	BaseModel
	CompanyName  string         `json:"company_name" gorm:"size:255"`
	CNPJ         string         `json:"cnpj" gorm:"column:cnpj;size:20"`
	Address      string         `json:"address" gorm:"type:text"`
	LogoURL      string         `json:"logo_url" gorm:"column:logo_url;size:512"`
	Responsaveis pq.StringArray `json:"responsaveis" gorm:"type:text[]"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (OrganizationSettings) TableName() string {
	return "organization_settings"
}
