package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
)

func TestOrganizationCreateRequiresElevation(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewOrganizationService(db)

	err := svc.Create(memberScope(1, org1), &model.Organization{Name: "Rogue"})
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	org := &model.Organization{Name: "New Tenant", Code: "new-tenant"}
	require.NoError(t, svc.Create(elevatedScope(), org))
	assert.True(t, org.Active)
	assert.NotZero(t, org.ID)
}

func TestOrganizationCreateRejectsDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	seedOrgs(t, db)
	svc := NewOrganizationService(db)

	err := svc.Create(elevatedScope(), &model.Organization{Name: "Clone", Code: "org-1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrganizationGetVisibility(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewOrganizationService(db)

	own, err := svc.Get(memberScope(1, org1), org1)
	require.NoError(t, err)
	assert.Equal(t, org1, own.ID)

	_, err = svc.Get(memberScope(1, org1), org2)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	foreign, err := svc.Get(elevatedScope(), org2)
	require.NoError(t, err)
	assert.Equal(t, org2, foreign.ID)
}

func TestOrganizationListVisibility(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewOrganizationService(db)

	own, err := svc.List(memberScope(1, org1))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, org1, own[0].ID)

	all, err := svc.List(elevatedScope())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrganizationSetActive(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewOrganizationService(db)

	require.NoError(t, svc.SetActive(elevatedScope(), org1, false))

	org, err := svc.Get(elevatedScope(), org1)
	require.NoError(t, err)
	assert.False(t, org.Active)

	err = svc.SetActive(memberScope(1, org1), org2, false)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
