package model

import (
	"time"

	"gorm.io/gorm"
)

// Lookup entities are small tenant-scoped reference tables (statuses, tags,
// types, ...). Each is uniquely keyed per organization by its code. They all
// share the same field layout but live in separate tables, so the composite
// unique index carries a per-table name.

// LookupRecord is the common surface the lookup service works against.
type LookupRecord interface {
	TenantOwned
	GetID() uint
	GetCode() string
}

// Status is a lookup entity used both for customer status history and as an
// optional asset reference.
type Status struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_statuses_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_statuses_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (s *Status) GetID() uint { return s.ID }
func (s *Status) GetCode() string { return s.Code }
func (s *Status) GetOrganizationID() uint { return s.OrganizationID }
func (s *Status) SetOrganizationID(id uint) { s.OrganizationID = id }

// Tag is a free-form label attachable to assets.
type Tag struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_tags_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *Tag) GetID() uint { return t.ID }
func (t *Tag) GetCode() string { return t.Code }
func (t *Tag) GetOrganizationID() uint { return t.OrganizationID }
func (t *Tag) SetOrganizationID(id uint) { t.OrganizationID = id }

// AssetType classifies assets (laptop, printer, server, ...).
type AssetType struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_asset_types_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_asset_types_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *AssetType) GetID() uint { return t.ID }
func (t *AssetType) GetCode() string { return t.Code }
func (t *AssetType) GetOrganizationID() uint { return t.OrganizationID }
func (t *AssetType) SetOrganizationID(id uint) { t.OrganizationID = id }

// Coverage describes what a warranty covers.
type Coverage struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_coverages_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_coverages_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *Coverage) GetID() uint { return c.ID }
func (c *Coverage) GetCode() string { return c.Code }
func (c *Coverage) GetOrganizationID() uint { return c.OrganizationID }
func (c *Coverage) SetOrganizationID(id uint) { c.OrganizationID = id }

// ServiceLevel describes the response commitment attached to a warranty.
type ServiceLevel struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_service_levels_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_service_levels_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (s *ServiceLevel) GetID() uint { return s.ID }
func (s *ServiceLevel) GetCode() string { return s.Code }
func (s *ServiceLevel) GetOrganizationID() uint { return s.OrganizationID }
func (s *ServiceLevel) SetOrganizationID(id uint) { s.OrganizationID = id }

// Manufacturer is the maker of an asset.
type Manufacturer struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_manufacturers_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_manufacturers_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *Manufacturer) GetID() uint { return m.ID }
func (m *Manufacturer) GetCode() string { return m.Code }
func (m *Manufacturer) GetOrganizationID() uint { return m.OrganizationID }
func (m *Manufacturer) SetOrganizationID(id uint) { m.OrganizationID = id }

// Product is a catalog entry an asset can reference.
type Product struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_products_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_products_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *Product) GetID() uint { return p.ID }
func (p *Product) GetCode() string { return p.Code }
func (p *Product) GetOrganizationID() uint { return p.OrganizationID }
func (p *Product) SetOrganizationID(id uint) { p.OrganizationID = id }

// Location is a physical site where assets are installed.
type Location struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_locations_org_code"`
	Code           string         `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_locations_org_code"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (l *Location) GetID() uint { return l.ID }
func (l *Location) GetCode() string { return l.Code }
func (l *Location) GetOrganizationID() uint { return l.OrganizationID }
func (l *Location) SetOrganizationID(id uint) { l.OrganizationID = id }
