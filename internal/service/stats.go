package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
	"github.com/ikarolaborda/open-asm-sub000/internal/warranty"
)

// StatsService produces read-only rollups over one organization's data. The
// numbers are recomputed on every call; there is no caching layer.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// SnapshotOptions tune the rollup.
type SnapshotOptions struct {
	LowScoreThreshold int // assets with quality_score below this count as low quality
	TopCustomers      int // size of the top-customers-by-asset-count list
}

// TypeCount is one row of the per-type asset breakdown.
type TypeCount struct {
	TypeName string `json:"type_name"`
	Count    int64  `json:"count"`
}

// CustomerAssetCount is one row of the top-customers list.
type CustomerAssetCount struct {
	CustomerID uint   `json:"customer_id"`
	Name       string `json:"name"`
	AssetCount int64  `json:"asset_count"`
}

// Snapshot is the rollup returned to callers.
type Snapshot struct {
	OrganizationID         uint                 `json:"organization_id"`
	TotalAssets            int64                `json:"total_assets"`
	ActiveAssets           int64                `json:"active_assets"`
	RetiredAssets          int64                `json:"retired_assets"`
	AssetsWithWarranty     int64                `json:"assets_with_warranty"`
	AssetsWithoutWarranty  int64                `json:"assets_without_warranty"`
	LowQualityAssets       int64                `json:"low_quality_assets"`
	WarrantiesExpiringSoon int64                `json:"warranties_expiring_soon"`
	WarrantiesExpired      int64                `json:"warranties_expired"`
	AssetsByType           []TypeCount          `json:"assets_by_type"`
	TopCustomers           []CustomerAssetCount `json:"top_customers"`
	AverageQualityScore    float64              `json:"average_quality_score"`
	GeneratedAt            time.Time            `json:"generated_at"`
}

// Snapshot computes the rollup for one organization. Non-elevated callers
// may omit orgID and get their own organization; elevated callers must name
// the target explicitly — there is no implicit "all tenants" rollup.
func (s *StatsService) Snapshot(scope tenant.Scope, orgID uint, opts SnapshotOptions) (*Snapshot, error) {
	if orgID == 0 {
		if scope.IsElevated() {
			return nil, apperr.Validation("organization is required for elevated statistics")
		}
		own, ok := scope.CurrentOrgID()
		if !ok {
			return nil, apperr.Validation("organization is required")
		}
		orgID = own
	}
	if !scope.Authorize(orgID) {
		return nil, apperr.NotFound("organization not found")
	}
	if opts.LowScoreThreshold <= 0 {
		opts.LowScoreThreshold = 50
	}
	if opts.TopCustomers <= 0 {
		opts.TopCustomers = 5
	}

	now := time.Now()
	snap := &Snapshot{OrganizationID: orgID, GeneratedAt: now}

	assets := func() *gorm.DB {
		return s.db.Model(&model.Asset{}).Where("organization_id = ?", orgID)
	}
	warranties := func() *gorm.DB {
		return s.db.Model(&model.Warranty{}).Where("organization_id = ?", orgID)
	}

	if err := assets().Count(&snap.TotalAssets).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count assets")
	}
	if err := assets().Where("is_active = ?", true).Count(&snap.ActiveAssets).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count active assets")
	}
	snap.RetiredAssets = snap.TotalAssets - snap.ActiveAssets

	currentWarranties := s.db.Model(&model.Warranty{}).
		Select("asset_id").
		Where("organization_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			orgID, true, now, now)
	if err := assets().Where("id IN (?)", currentWarranties).
		Count(&snap.AssetsWithWarranty).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count covered assets")
	}
	snap.AssetsWithoutWarranty = snap.TotalAssets - snap.AssetsWithWarranty

	if err := assets().Where("quality_score < ?", opts.LowScoreThreshold).
		Count(&snap.LowQualityAssets).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count low quality assets")
	}

	soonCutoff := now.AddDate(0, 0, warranty.ExpiringSoonWindow)
	if err := warranties().Where("end_date >= ? AND end_date <= ?", now, soonCutoff).
		Count(&snap.WarrantiesExpiringSoon).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count expiring warranties")
	}
	if err := warranties().Where("end_date < ?", now).
		Count(&snap.WarrantiesExpired).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count expired warranties")
	}

	if err := assets().
		Select("COALESCE(asset_types.name, 'unspecified') AS type_name, COUNT(assets.id) AS count").
		Joins("LEFT JOIN asset_types ON asset_types.id = assets.type_id").
		Group("type_name").
		Order("count DESC").
		Scan(&snap.AssetsByType).Error; err != nil {
		return nil, apperr.Internal(err, "failed to break down assets by type")
	}

	if err := assets().
		Select("customers.id AS customer_id, customers.name AS name, COUNT(assets.id) AS asset_count").
		Joins("JOIN customers ON customers.id = assets.customer_id").
		Group("customers.id, customers.name").
		Order("asset_count DESC").
		Limit(opts.TopCustomers).
		Scan(&snap.TopCustomers).Error; err != nil {
		return nil, apperr.Internal(err, "failed to rank customers")
	}

	if err := assets().
		Select("COALESCE(AVG(quality_score), 0)").
		Scan(&snap.AverageQualityScore).Error; err != nil {
		return nil, apperr.Internal(err, "failed to average quality scores")
	}

	return snap, nil
}
