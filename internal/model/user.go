package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated principal. A user belongs to exactly one
// organization; OrganizationID is nil only for super-admins, who may act
// across organizations.
type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Email          string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password       string         `json:"-" gorm:"type:varchar(255)"`
	OrganizationID *uint          `json:"organization_id,omitempty" gorm:"index"`
	IsSuperAdmin   bool           `json:"is_super_admin" gorm:"default:false"`
	Active         bool           `json:"active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
