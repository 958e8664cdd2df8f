package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/warranty"
)

func TestAssetCreateStampsOrganizationAndScore(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	customer := seedCustomer(t, db, org1, "cust-1")
	svc := NewAssetService(db)

	a := &model.Asset{
		OrganizationID: org2, // payload lies; ownership is forced to the caller's org
		CustomerID:     customer.ID,
		Name:           "Core switch",
		SerialNumber:   "SN-1",
		QualityScore:   99, // caller-supplied score is ignored
		IsActive:       true,
	}
	require.NoError(t, svc.Create(memberScope(5, org1), a))

	assert.Equal(t, org1, a.OrganizationID)
	assert.Equal(t, uint(5), a.CreatedBy)
	// name + serial + customer present, type absent: 3 * 17.5 rounds to 53.
	assert.Equal(t, 53, a.QualityScore)
}

func TestAssetCreateRequiresName(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)

	err := svc.Create(memberScope(1, org1), &model.Asset{SerialNumber: "SN-1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAssetCreateRejectsForeignCustomer(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	foreignCustomer := seedCustomer(t, db, org2, "cust-2")
	svc := NewAssetService(db)

	err := svc.Create(memberScope(1, org1), &model.Asset{
		Name:       "Switch",
		CustomerID: foreignCustomer.ID,
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAssetCreateSerialUniquePerOrganization(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewAssetService(db)

	require.NoError(t, svc.Create(memberScope(1, org1), &model.Asset{Name: "A", SerialNumber: "SN-1"}))

	err := svc.Create(memberScope(1, org1), &model.Asset{Name: "B", SerialNumber: "SN-1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// The same serial in another organization is fine.
	assert.NoError(t, svc.Create(memberScope(2, org2), &model.Asset{Name: "C", SerialNumber: "SN-1"}))
}

func TestAssetGetHidesForeignAssets(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewAssetService(db)

	a := &model.Asset{Name: "Switch"}
	require.NoError(t, svc.Create(memberScope(1, org1), a))

	_, err := svc.Get(memberScope(2, org2), a.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	view, err := svc.Get(elevatedScope(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, view.ID)
}

func TestAssetGetDerivesWarrantyStatus(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)

	a := &model.Asset{Name: "Switch"}
	require.NoError(t, svc.Create(memberScope(1, org1), a))

	view, err := svc.Get(memberScope(1, org1), a.ID)
	require.NoError(t, err)
	assert.Equal(t, warranty.StatusNoWarranty, view.WarrantyStatus)

	now := time.Now()
	require.NoError(t, db.Create(&model.Warranty{
		OrganizationID: org1,
		AssetID:        a.ID,
		StartDate:      now.AddDate(-1, 0, 0),
		EndDate:        now.AddDate(1, 0, 0),
		IsActive:       true,
	}).Error)

	view, err = svc.Get(memberScope(1, org1), a.ID)
	require.NoError(t, err)
	assert.Equal(t, warranty.StatusActive, view.WarrantyStatus)
}

func TestAssetUpdateRecomputesScore(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)

	a := &model.Asset{Name: "Switch"}
	require.NoError(t, svc.Create(memberScope(1, org1), a))
	initial := a.QualityScore

	updated, err := svc.Update(memberScope(1, org1), a.ID, &model.Asset{
		Name:         "Switch",
		SerialNumber: "SN-9",
		Description:  "rack 4",
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Greater(t, updated.QualityScore, initial)
}

func TestAssetUpdateForeignIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewAssetService(db)

	a := &model.Asset{Name: "Switch"}
	require.NoError(t, svc.Create(memberScope(1, org1), a))

	_, err := svc.Update(memberScope(2, org2), a.ID, &model.Asset{Name: "Hijacked"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAssetPatchMetadataMerges(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)

	a := &model.Asset{Name: "Switch", Metadata: model.JSONMap{"rack": "4", "row": "2"}}
	require.NoError(t, svc.Create(memberScope(1, org1), a))

	patched, err := svc.PatchMetadata(memberScope(1, org1), a.ID, model.JSONMap{
		"row":   "9",
		"rack":  nil,
		"power": "redundant",
	})
	require.NoError(t, err)
	assert.Equal(t, model.JSONMap{"row": "9", "power": "redundant"}, patched.Metadata)

	// The merge must be persisted, not just returned.
	view, err := svc.Get(memberScope(1, org1), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "9", view.Metadata["row"])
	_, exists := view.Metadata["rack"]
	assert.False(t, exists)
}

func TestAssetSyncTagsRejectsForeignTag(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewAssetService(db)

	a := &model.Asset{Name: "Switch"}
	require.NoError(t, svc.Create(memberScope(1, org1), a))

	mine := model.Tag{OrganizationID: org1, Code: "prod", Name: "Production"}
	foreign := model.Tag{OrganizationID: org2, Code: "prod", Name: "Production"}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&foreign).Error)

	err := svc.SyncTags(memberScope(1, org1), a.ID, []uint{mine.ID, foreign.ID})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, svc.SyncTags(memberScope(1, org1), a.ID, []uint{mine.ID}))

	view, err := svc.Get(memberScope(1, org1), a.ID)
	require.NoError(t, err)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, mine.ID, view.Tags[0].ID)
}

func TestAssetLifecycle(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)
	scope := memberScope(1, org1)

	a := &model.Asset{Name: "Switch"}
	require.NoError(t, svc.Create(scope, a))

	require.NoError(t, svc.Delete(scope, a.ID))
	_, err := svc.Get(scope, a.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Restore(scope, a.ID))
	_, err = svc.Get(scope, a.ID)
	assert.NoError(t, err)

	// Purge is elevated-only.
	err = svc.Purge(scope, a.ID)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	require.NoError(t, svc.Purge(elevatedScope(), a.ID))
	var count int64
	db.Unscoped().Model(&model.Asset{}).Where("id = ?", a.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAssetListFilters(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewAssetService(db)

	require.NoError(t, svc.Create(memberScope(1, org1), &model.Asset{Name: "Bare", IsActive: true}))
	require.NoError(t, svc.Create(memberScope(1, org1), &model.Asset{
		Name:         "Complete",
		SerialNumber: "SN-1",
		Description:  "rack 4",
		AssetTag:     "TAG-1",
		IsActive:     true,
	}))
	require.NoError(t, svc.Create(memberScope(2, org2), &model.Asset{Name: "Foreign", IsActive: true}))

	views, total, err := svc.List(memberScope(1, org1), AssetFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)

	below := 30
	views, total, err = svc.List(memberScope(1, org1), AssetFilter{ScoreBelow: &below})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "Bare", views[0].Name)
}

func TestAssetListWarrantyFilter(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)
	now := time.Now()

	covered := &model.Asset{Name: "Covered"}
	lapsed := &model.Asset{Name: "Lapsed"}
	require.NoError(t, svc.Create(memberScope(1, org1), covered))
	require.NoError(t, svc.Create(memberScope(1, org1), lapsed))

	require.NoError(t, db.Create(&model.Warranty{
		OrganizationID: org1, AssetID: covered.ID,
		StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(1, 0, 0), IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&model.Warranty{
		OrganizationID: org1, AssetID: lapsed.ID,
		StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(0, 0, -10), IsActive: true,
	}).Error)

	views, _, err := svc.List(memberScope(1, org1), AssetFilter{WarrantyFilter: "expired"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Lapsed", views[0].Name)
}

func TestAssetBulkSetActive(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	svc := NewAssetService(db)

	require.NoError(t, svc.Create(memberScope(1, org1), &model.Asset{Name: "A", IsActive: true}))
	require.NoError(t, svc.Create(memberScope(1, org1), &model.Asset{Name: "B", IsActive: true}))
	require.NoError(t, svc.Create(memberScope(2, org2), &model.Asset{Name: "C", IsActive: true}))

	// A member cannot bulk-update a foreign organization.
	_, err := svc.BulkSetActive(memberScope(1, org1), org2, false)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	affected, err := svc.BulkSetActive(memberScope(1, org1), org1, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var stillActive int64
	db.Model(&model.Asset{}).Where("organization_id = ? AND is_active = ?", org1, true).Count(&stillActive)
	assert.Equal(t, int64(0), stillActive)

	var foreignActive int64
	db.Model(&model.Asset{}).Where("organization_id = ? AND is_active = ?", org2, true).Count(&foreignActive)
	assert.Equal(t, int64(1), foreignActive)
}

func TestAssetElevatedCreateNeedsExplicitOrganization(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewAssetService(db)

	err := svc.Create(elevatedScope(), &model.Asset{Name: "Orphan"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	a := &model.Asset{Name: "Targeted", OrganizationID: org1}
	require.NoError(t, svc.Create(elevatedScope(), a))
	assert.Equal(t, org1, a.OrganizationID)
}
