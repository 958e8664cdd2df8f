package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/repository"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
	"github.com/ikarolaborda/open-asm-sub000/internal/warranty"
)

// WarrantyService owns warranty records. Ownership follows the covered
// asset: a warranty is always stamped with its asset's organization.
type WarrantyService struct {
	db *gorm.DB
}

func NewWarrantyService(db *gorm.DB) *WarrantyService {
	return &WarrantyService{db: db}
}

// Create persists a warranty for an asset the caller can see. The caller
// cannot choose the organization; it is copied from the asset.
func (s *WarrantyService) Create(scope tenant.Scope, w *model.Warranty) error {
	if w.AssetID == 0 {
		return apperr.Validation("asset_id is required")
	}
	var a model.Asset
	if err := repository.FindScoped(s.db, scope, &a, w.AssetID); err != nil {
		return err
	}
	if err := s.validateDates(w); err != nil {
		return err
	}
	if err := s.validateReferences(w, a.OrganizationID); err != nil {
		return err
	}
	w.OrganizationID = a.OrganizationID
	if err := s.db.Create(w).Error; err != nil {
		return apperr.Internal(err, "failed to create warranty")
	}
	return nil
}

// Get returns one warranty confined to the caller's organization.
func (s *WarrantyService) Get(scope tenant.Scope, id uint) (*model.Warranty, error) {
	var w model.Warranty
	if err := repository.FindScoped(s.db, scope, &w, id); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListByAsset returns the asset's warranties, optionally filtered with the
// per-record expiry predicates ("expired" / "expiring_soon" / "active").
func (s *WarrantyService) ListByAsset(scope tenant.Scope, assetID uint, filter string) ([]model.Warranty, error) {
	var a model.Asset
	if err := repository.FindScoped(s.db, scope, &a, assetID); err != nil {
		return nil, err
	}

	now := time.Now()
	q := s.db.Where("asset_id = ?", a.ID)
	switch filter {
	case "expired":
		q = q.Where("end_date < ?", now)
	case "expiring_soon":
		q = q.Where("end_date >= ? AND end_date <= ?", now, now.AddDate(0, 0, warranty.ExpiringSoonWindow))
	case "active":
		q = q.Where("is_active = ?", true)
	case "":
	default:
		return nil, apperr.Validation("unknown warranty filter %q", filter)
	}

	var warranties []model.Warranty
	if err := q.Order("end_date desc").Find(&warranties).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list warranties")
	}
	return warranties, nil
}

// Update overwrites the warranty's editable fields. The covered asset and
// the organization never change.
func (s *WarrantyService) Update(scope tenant.Scope, id uint, in *model.Warranty) (*model.Warranty, error) {
	var w model.Warranty
	if err := repository.FindScoped(s.db, scope, &w, id); err != nil {
		return nil, err
	}
	if err := repository.AuthorizeMutation(scope, &w); err != nil {
		return nil, err
	}
	if err := s.validateDates(in); err != nil {
		return nil, err
	}
	if err := s.validateReferences(in, w.OrganizationID); err != nil {
		return nil, err
	}

	w.CoverageID = in.CoverageID
	w.ServiceLevelID = in.ServiceLevelID
	w.StartDate = in.StartDate
	w.EndDate = in.EndDate
	w.IsActive = in.IsActive
	w.Cost = in.Cost

	if err := s.db.Save(&w).Error; err != nil {
		return nil, apperr.Internal(err, "failed to update warranty")
	}
	return &w, nil
}

// Delete soft-deletes the warranty.
func (s *WarrantyService) Delete(scope tenant.Scope, id uint) error {
	var w model.Warranty
	if err := repository.FindScoped(s.db, scope, &w, id); err != nil {
		return err
	}
	if err := s.db.Delete(&w).Error; err != nil {
		return apperr.Internal(err, "failed to delete warranty")
	}
	return nil
}

// Restore reverses a soft delete.
func (s *WarrantyService) Restore(scope tenant.Scope, id uint) error {
	var w model.Warranty
	return repository.Restore(s.db, scope, &w, id)
}

// Purge permanently removes a warranty. Elevated principals only.
func (s *WarrantyService) Purge(scope tenant.Scope, id uint) error {
	var w model.Warranty
	return repository.Purge(s.db, scope, &w, id)
}

func (s *WarrantyService) validateDates(w *model.Warranty) error {
	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return apperr.Validation("start_date and end_date are required")
	}
	if w.EndDate.Before(w.StartDate) {
		return apperr.Validation("end_date must not precede start_date")
	}
	return nil
}

func (s *WarrantyService) validateReferences(w *model.Warranty, orgID uint) error {
	refs := []struct {
		id    *uint
		m     model.TenantOwned
		label string
	}{
		{w.CoverageID, &model.Coverage{}, "coverage"},
		{w.ServiceLevelID, &model.ServiceLevel{}, "service level"},
	}
	for _, ref := range refs {
		if ref.id == nil || *ref.id == 0 {
			continue
		}
		if err := s.db.First(ref.m, *ref.id).Error; err != nil {
			return apperr.Validation("%s does not exist", ref.label)
		}
		if ref.m.GetOrganizationID() != orgID {
			return apperr.Validation("%s does not belong to the warranty's organization", ref.label)
		}
	}
	return nil
}
