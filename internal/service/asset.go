package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/quality"
	"github.com/ikarolaborda/open-asm-sub000/internal/repository"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
	"github.com/ikarolaborda/open-asm-sub000/internal/warranty"
)

// AssetService owns the asset lifecycle. Every mutation recomputes the
// quality score inline and runs inside a single transaction; every read is
// confined to the caller's organization through the repository layer.
type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db}
}

// AssetView is an asset plus its derived warranty status. The status is
// computed at read time and never stored.
type AssetView struct {
	model.Asset
	WarrantyStatus warranty.Status `json:"warranty_status"`
}

// AssetFilter narrows List results. Zero values mean "no filter".
type AssetFilter struct {
	CustomerID     uint
	TypeID         uint
	IsActive       *bool
	ScoreBelow     *int
	WarrantyFilter string // "expired" or "expiring_soon", per-record predicates
	Limit          int
	Offset         int
}

// Create stamps ownership, validates references, computes the quality score
// and persists the asset. The caller-supplied QualityScore is ignored.
func (s *AssetService) Create(scope tenant.Scope, a *model.Asset) error {
	if err := repository.StampOnCreate(scope, a); err != nil {
		return err
	}
	if a.Name == "" {
		return apperr.Validation("name is required")
	}
	if err := s.validateReferences(a); err != nil {
		return err
	}
	if a.SerialNumber != "" {
		var count int64
		if err := s.db.Model(&model.Asset{}).
			Where("serial_number = ? AND organization_id = ?", a.SerialNumber, a.OrganizationID).
			Count(&count).Error; err != nil {
			return apperr.Internal(err, "failed to check serial number uniqueness")
		}
		if count > 0 {
			return apperr.Validation("serial number already exists in this organization")
		}
	}

	a.CreatedBy = scope.UserID()
	a.UpdatedBy = scope.UserID()
	a.QualityScore = quality.ComputeScore(a)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Warranties").Create(a).Error; err != nil {
			return apperr.Internal(err, "failed to create asset")
		}
		return nil
	})
}

// Get returns one asset with its warranties, tags and derived warranty
// status. Foreign and absent assets are both not-found.
func (s *AssetService) Get(scope tenant.Scope, id uint) (*AssetView, error) {
	var a model.Asset
	q := repository.ScopedQuery(s.db, scope, &model.Asset{}).
		Preload("Warranties").
		Preload("Tags")
	if err := q.Where("assets.id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("asset not found")
		}
		return nil, apperr.Internal(err, "failed to load asset")
	}
	return &AssetView{Asset: a, WarrantyStatus: warranty.DeriveStatus(a.Warranties, time.Now())}, nil
}

// List returns the caller's assets with derived warranty statuses, plus the
// unpaginated total.
func (s *AssetService) List(scope tenant.Scope, filter AssetFilter) ([]AssetView, int64, error) {
	now := time.Now()
	q := repository.ScopedQuery(s.db, scope, &model.Asset{})

	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.TypeID != 0 {
		q = q.Where("type_id = ?", filter.TypeID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.ScoreBelow != nil {
		q = q.Where("quality_score < ?", *filter.ScoreBelow)
	}
	switch filter.WarrantyFilter {
	case "expired":
		q = q.Where("id IN (?)", s.db.Model(&model.Warranty{}).
			Select("asset_id").Where("end_date < ?", now))
	case "expiring_soon":
		q = q.Where("id IN (?)", s.db.Model(&model.Warranty{}).
			Select("asset_id").
			Where("end_date >= ? AND end_date <= ?", now, now.AddDate(0, 0, warranty.ExpiringSoonWindow)))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err, "failed to count assets")
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var assets []model.Asset
	if err := q.Preload("Warranties").Order("created_at desc").Find(&assets).Error; err != nil {
		return nil, 0, apperr.Internal(err, "failed to list assets")
	}

	views := make([]AssetView, 0, len(assets))
	for i := range assets {
		views = append(views, AssetView{
			Asset:          assets[i],
			WarrantyStatus: warranty.DeriveStatus(assets[i].Warranties, now),
		})
	}
	return views, total, nil
}

// Update overwrites the asset's editable fields and recomputes the quality
// score in the same transaction. Ownership and metadata are untouched;
// metadata changes go through PatchMetadata so partial updates merge instead
// of replacing.
func (s *AssetService) Update(scope tenant.Scope, id uint, in *model.Asset) (*model.Asset, error) {
	var a model.Asset
	if err := repository.FindScoped(s.db, scope, &a, id); err != nil {
		return nil, err
	}
	if err := repository.AuthorizeMutation(scope, &a); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	if in.SerialNumber != "" && in.SerialNumber != a.SerialNumber {
		var count int64
		if err := s.db.Model(&model.Asset{}).
			Where("serial_number = ? AND organization_id = ? AND id != ?", in.SerialNumber, a.OrganizationID, a.ID).
			Count(&count).Error; err != nil {
			return nil, apperr.Internal(err, "failed to check serial number uniqueness")
		}
		if count > 0 {
			return nil, apperr.Validation("serial number already exists in this organization")
		}
	}

	a.CustomerID = in.CustomerID
	a.LocationID = in.LocationID
	a.ManufacturerID = in.ManufacturerID
	a.ProductID = in.ProductID
	a.TypeID = in.TypeID
	a.StatusID = in.StatusID
	a.Name = in.Name
	a.SerialNumber = in.SerialNumber
	a.AssetTag = in.AssetTag
	a.ModelNumber = in.ModelNumber
	a.PartNumber = in.PartNumber
	a.Description = in.Description
	a.PurchaseDate = in.PurchaseDate
	a.InstallDate = in.InstallDate
	a.WarrantyStartDate = in.WarrantyStartDate
	a.WarrantyEndDate = in.WarrantyEndDate
	a.PurchasePrice = in.PurchasePrice
	a.IsActive = in.IsActive
	a.UpdatedBy = scope.UserID()

	if err := s.validateReferences(&a); err != nil {
		return nil, err
	}
	a.QualityScore = quality.ComputeScore(&a)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Warranties").Save(&a).Error; err != nil {
			return apperr.Internal(err, "failed to update asset")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// PatchMetadata merges patch into the asset's metadata bag. Keys present in
// patch overwrite, nil values remove; everything else is preserved.
func (s *AssetService) PatchMetadata(scope tenant.Scope, id uint, patch model.JSONMap) (*model.Asset, error) {
	var a model.Asset
	if err := repository.FindScoped(s.db, scope, &a, id); err != nil {
		return nil, err
	}
	a.Metadata = a.Metadata.Merge(patch)
	a.UpdatedBy = scope.UserID()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&a).Updates(map[string]any{
			"metadata":   a.Metadata,
			"updated_by": a.UpdatedBy,
		}).Error; err != nil {
			return apperr.Internal(err, "failed to patch metadata")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SyncTags replaces the asset's tag set in one transaction. Every tag must
// belong to the asset's organization.
func (s *AssetService) SyncTags(scope tenant.Scope, id uint, tagIDs []uint) error {
	var a model.Asset
	if err := repository.FindScoped(s.db, scope, &a, id); err != nil {
		return err
	}

	var tags []model.Tag
	if len(tagIDs) > 0 {
		if err := s.db.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return apperr.Internal(err, "failed to load tags")
		}
		if len(tags) != len(tagIDs) {
			return apperr.Validation("one or more tags do not exist")
		}
		for i := range tags {
			if tags[i].OrganizationID != a.OrganizationID {
				return apperr.Validation("tag %q does not belong to the asset's organization", tags[i].Code)
			}
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&a).Association("Tags").Replace(tags); err != nil {
			return apperr.Internal(err, "failed to sync tags")
		}
		return nil
	})
}

// Delete soft-deletes the asset; it disappears from standard reads but
// remains restorable.
func (s *AssetService) Delete(scope tenant.Scope, id uint) error {
	var a model.Asset
	if err := repository.FindScoped(s.db, scope, &a, id); err != nil {
		return err
	}
	if err := s.db.Delete(&a).Error; err != nil {
		return apperr.Internal(err, "failed to delete asset")
	}
	return nil
}

// Restore reverses a soft delete.
func (s *AssetService) Restore(scope tenant.Scope, id uint) error {
	var a model.Asset
	return repository.Restore(s.db, scope, &a, id)
}

// Purge permanently removes a soft-deleted asset. Elevated principals only.
func (s *AssetService) Purge(scope tenant.Scope, id uint) error {
	var a model.Asset
	return repository.Purge(s.db, scope, &a, id)
}

// BulkSetActive flips the activation flag on every asset in the organization
// inside one transaction. Returns the number of rows touched.
func (s *AssetService) BulkSetActive(scope tenant.Scope, orgID uint, active bool) (int64, error) {
	if !scope.Authorize(orgID) {
		return 0, apperr.NotFound("organization not found")
	}
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Asset{}).
			Where("organization_id = ?", orgID).
			Updates(map[string]any{"is_active": active, "updated_by": scope.UserID()})
		if res.Error != nil {
			return apperr.Internal(res.Error, "bulk activation failed")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// validateReferences rejects foreign-organization references. A reference
// into another tenant is a validation error, not a not-found, because the
// payload itself is malformed.
func (s *AssetService) validateReferences(a *model.Asset) error {
	if a.CustomerID != 0 {
		var c model.Customer
		if err := s.db.First(&c, a.CustomerID).Error; err != nil {
			return apperr.Validation("customer does not exist")
		}
		if c.OrganizationID != a.OrganizationID {
			return apperr.Validation("customer does not belong to the asset's organization")
		}
	}
	refs := []struct {
		id    *uint
		m     model.TenantOwned
		label string
	}{
		{a.LocationID, &model.Location{}, "location"},
		{a.ManufacturerID, &model.Manufacturer{}, "manufacturer"},
		{a.ProductID, &model.Product{}, "product"},
		{a.TypeID, &model.AssetType{}, "type"},
		{a.StatusID, &model.Status{}, "status"},
	}
	for _, ref := range refs {
		if ref.id == nil || *ref.id == 0 {
			continue
		}
		if err := s.db.First(ref.m, *ref.id).Error; err != nil {
			return apperr.Validation("%s does not exist", ref.label)
		}
		if ref.m.GetOrganizationID() != a.OrganizationID {
			return apperr.Validation("%s does not belong to the asset's organization", ref.label)
		}
	}
	return nil
}
