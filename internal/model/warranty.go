package model

import (
	"time"

	"gorm.io/gorm"
)

// Warranty represents a coverage window for an asset. The lifecycle label
// (active / expiring soon / expired) is never stored; it is derived from the
// date window at read time. OrganizationID is denormalized from the owning
// asset so the isolation layer can scope warranty queries directly.
type Warranty struct {
	ID             uint  `json:"id" gorm:"primaryKey"`
	OrganizationID uint  `json:"organization_id" gorm:"index;not null"`
	AssetID        uint  `json:"asset_id" gorm:"index;not null"`
	CoverageID     *uint `json:"coverage_id,omitempty" gorm:"index"`
	ServiceLevelID *uint `json:"service_level_id,omitempty" gorm:"index"`

	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Cost      float64   `json:"cost" gorm:"type:decimal(12,2);default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (w *Warranty) GetOrganizationID() uint { return w.OrganizationID }
func (w *Warranty) SetOrganizationID(id uint) { w.OrganizationID = id }
