package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
)

// seedStatsFixture builds a small org with a known shape: three assets (two
// active), one covered by a running warranty, one by a lapsed one.
func seedStatsFixture(t *testing.T, db *gorm.DB, orgID uint) {
	now := time.Now()

	laptop := model.AssetType{OrganizationID: orgID, Code: "laptop", Name: "Laptop"}
	require.NoError(t, db.Create(&laptop).Error)

	acme := seedCustomer(t, db, orgID, "acme")
	globex := seedCustomer(t, db, orgID, "globex")

	covered := model.Asset{
		OrganizationID: orgID, CustomerID: acme.ID, TypeID: &laptop.ID,
		Name: "Covered", SerialNumber: "SN-1", IsActive: true, QualityScore: 80,
	}
	lapsed := model.Asset{
		OrganizationID: orgID, CustomerID: acme.ID,
		Name: "Lapsed", SerialNumber: "SN-2", IsActive: true, QualityScore: 40,
	}
	retired := model.Asset{
		OrganizationID: orgID, CustomerID: globex.ID,
		Name: "Retired", SerialNumber: "SN-3", IsActive: false, QualityScore: 30,
	}
	require.NoError(t, db.Create(&covered).Error)
	require.NoError(t, db.Create(&lapsed).Error)
	require.NoError(t, db.Create(&retired).Error)

	require.NoError(t, db.Create(&model.Warranty{
		OrganizationID: orgID, AssetID: covered.ID,
		StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(1, 0, 0), IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&model.Warranty{
		OrganizationID: orgID, AssetID: lapsed.ID,
		StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(0, 0, -10), IsActive: true,
	}).Error)
}

func TestStatsSnapshotCounts(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	seedStatsFixture(t, db, org1)

	// Noise in another org must not leak into the rollup.
	seedAsset(t, db, org2, "Foreign")

	svc := NewStatsService(db)
	snap, err := svc.Snapshot(memberScope(1, org1), 0, SnapshotOptions{})
	require.NoError(t, err)

	assert.Equal(t, org1, snap.OrganizationID)
	assert.Equal(t, int64(3), snap.TotalAssets)
	assert.Equal(t, int64(2), snap.ActiveAssets)
	assert.Equal(t, int64(1), snap.RetiredAssets)
	assert.Equal(t, int64(1), snap.AssetsWithWarranty)
	assert.Equal(t, int64(2), snap.AssetsWithoutWarranty)
	assert.Equal(t, int64(2), snap.LowQualityAssets) // scores 40 and 30 under the default 50
	assert.Equal(t, int64(1), snap.WarrantiesExpired)
	assert.InDelta(t, 50.0, snap.AverageQualityScore, 0.01)
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestStatsSnapshotBreakdowns(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	seedStatsFixture(t, db, org1)

	svc := NewStatsService(db)
	snap, err := svc.Snapshot(memberScope(1, org1), 0, SnapshotOptions{})
	require.NoError(t, err)

	byType := map[string]int64{}
	for _, row := range snap.AssetsByType {
		byType[row.TypeName] = row.Count
	}
	assert.Equal(t, int64(1), byType["Laptop"])
	assert.Equal(t, int64(2), byType["unspecified"])

	require.NotEmpty(t, snap.TopCustomers)
	assert.Equal(t, "Customer acme", snap.TopCustomers[0].Name)
	assert.Equal(t, int64(2), snap.TopCustomers[0].AssetCount)
}

func TestStatsSnapshotThresholdOption(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	seedStatsFixture(t, db, org1)

	svc := NewStatsService(db)
	snap, err := svc.Snapshot(memberScope(1, org1), 0, SnapshotOptions{LowScoreThreshold: 90})
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.LowQualityAssets)
}

func TestStatsSnapshotAuthorization(t *testing.T) {
	db := setupTestDB(t)
	org1, org2 := seedOrgs(t, db)
	seedStatsFixture(t, db, org1)
	svc := NewStatsService(db)

	// Elevated callers must name a target organization.
	_, err := svc.Snapshot(elevatedScope(), 0, SnapshotOptions{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	snap, err := svc.Snapshot(elevatedScope(), org1, SnapshotOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.TotalAssets)

	// Members cannot roll up a foreign organization.
	_, err = svc.Snapshot(memberScope(1, org1), org2, SnapshotOptions{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStatsSnapshotEmptyOrganization(t *testing.T) {
	db := setupTestDB(t)
	org1, _ := seedOrgs(t, db)
	svc := NewStatsService(db)

	snap, err := svc.Snapshot(memberScope(1, org1), 0, SnapshotOptions{})
	require.NoError(t, err)
	assert.Zero(t, snap.TotalAssets)
	assert.Zero(t, snap.AverageQualityScore)
	assert.Empty(t, snap.TopCustomers)
}
