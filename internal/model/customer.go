package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a customer record owned by an organization. The
// customer's "current status" is tracked exclusively through CustomerStatus
// association rows; it is never duplicated onto this table.
type Customer struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_org_customer_code"`
	Name           string `json:"name" gorm:"type:varchar(100);index;not null"`
	Code           string `json:"code" gorm:"type:varchar(50);uniqueIndex:idx_org_customer_code"` // Unique per organization
	Email          string `json:"email" gorm:"type:varchar(100)"`
	Phone          string `json:"phone" gorm:"type:varchar(20)"`
	Address        string `json:"address" gorm:"type:text"`
	City           string `json:"city" gorm:"type:varchar(50)"`
	Country        string `json:"country" gorm:"type:varchar(50)"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`

	Statuses []CustomerStatus `json:"statuses,omitempty" gorm:"foreignKey:CustomerID"`
	Contacts []Contact        `json:"contacts,omitempty" gorm:"many2many:customer_contacts"`

	CreatedBy uint           `json:"created_by" gorm:"index"`
	UpdatedBy uint           `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *Customer) GetOrganizationID() uint { return c.OrganizationID }
func (c *Customer) SetOrganizationID(id uint) { c.OrganizationID = id }

// CustomerStatus associates a customer with a status. At most one row per
// customer carries IsCurrent = true; the customer service enforces this
// transactionally.
type CustomerStatus struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"index;not null;uniqueIndex:idx_customer_status"`
	StatusID   uint      `json:"status_id" gorm:"index;not null;uniqueIndex:idx_customer_status"`
	IsCurrent  bool      `json:"is_current" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Status Status `json:"status,omitempty" gorm:"foreignKey:StatusID"`
}

// Contact is a person reachable for one or more customers within an
// organization.
type Contact struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Name           string `json:"name" gorm:"type:varchar(100);not null"`
	Email          string `json:"email" gorm:"type:varchar(100)"`
	Phone          string `json:"phone" gorm:"type:varchar(20)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *Contact) GetOrganizationID() uint { return c.OrganizationID }
func (c *Contact) SetOrganizationID(id uint) { c.OrganizationID = id }
