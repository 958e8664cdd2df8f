package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func memberScope(userID, orgID uint) tenant.Scope {
	return tenant.NewScope(userID, &orgID, false)
}

func elevatedScope() tenant.Scope {
	return tenant.NewScope(999, nil, true)
}

// seedOrgs creates two organizations and returns their ids.
func seedOrgs(t *testing.T, db *gorm.DB) (uint, uint) {
	one := model.Organization{Name: "Org One", Code: "org-1", Active: true}
	two := model.Organization{Name: "Org Two", Code: "org-2", Active: true}
	require.NoError(t, db.Create(&one).Error)
	require.NoError(t, db.Create(&two).Error)
	return one.ID, two.ID
}

func seedCustomer(t *testing.T, db *gorm.DB, orgID uint, code string) *model.Customer {
	c := &model.Customer{OrganizationID: orgID, Name: "Customer " + code, Code: code, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}
