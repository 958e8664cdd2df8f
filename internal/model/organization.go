package model

import (
	"time"

	"gorm.io/gorm"
)

// Organization represents a tenant. Every other entity in the registry is
// owned, directly or transitively, by exactly one organization.
type Organization struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Code      string         `json:"code" gorm:"type:varchar(50);uniqueIndex"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
