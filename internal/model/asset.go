package model

import (
	"time"

	"gorm.io/gorm"
)

// Asset represents a tracked asset owned by an organization. QualityScore is
// derived from field completeness and recomputed on every create and update;
// it is never accepted from the caller.
type Asset struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	OrganizationID uint `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_org_serial"`
	CustomerID     uint `json:"customer_id" gorm:"index"`

	// Optional lookup references.
	LocationID     *uint `json:"location_id,omitempty" gorm:"index"`
	ManufacturerID *uint `json:"manufacturer_id,omitempty" gorm:"index"`
	ProductID      *uint `json:"product_id,omitempty" gorm:"index"`
	TypeID         *uint `json:"type_id,omitempty" gorm:"index"`
	StatusID       *uint `json:"status_id,omitempty" gorm:"index"`

	Name         string `json:"name" gorm:"type:varchar(100);index;not null"`
	SerialNumber string `json:"serial_number" gorm:"type:varchar(100);uniqueIndex:idx_org_serial"` // Unique per organization
	AssetTag     string `json:"asset_tag" gorm:"type:varchar(50)"`
	ModelNumber  string `json:"model_number" gorm:"type:varchar(100)"`
	PartNumber   string `json:"part_number" gorm:"type:varchar(100)"`
	Description  string `json:"description" gorm:"type:text"`

	PurchaseDate      *time.Time `json:"purchase_date,omitempty"`
	InstallDate       *time.Time `json:"install_date,omitempty"`
	WarrantyStartDate *time.Time `json:"warranty_start_date,omitempty"`
	WarrantyEndDate   *time.Time `json:"warranty_end_date,omitempty"`

	PurchasePrice float64 `json:"purchase_price" gorm:"type:decimal(12,2);default:0"`

	IsActive     bool    `json:"is_active" gorm:"default:true"`
	QualityScore int     `json:"quality_score" gorm:"type:int;default:0"`
	Metadata     JSONMap `json:"metadata" gorm:"type:jsonb"`

	Tags       []Tag      `json:"tags,omitempty" gorm:"many2many:asset_tags"`
	Warranties []Warranty `json:"warranties,omitempty" gorm:"foreignKey:AssetID"`

	CreatedBy uint           `json:"created_by" gorm:"index"`
	UpdatedBy uint           `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Asset) GetOrganizationID() uint { return a.OrganizationID }
func (a *Asset) SetOrganizationID(id uint) { a.OrganizationID = id }
