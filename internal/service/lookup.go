package service

import (
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/repository"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

// LookupService owns the eight tenant-scoped lookup tables (statuses, tags,
// types, coverages, service levels, manufacturers, products, locations).
// They share a field layout, so the CRUD surface is generic over the record
// type instead of being written out eight times.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

// CreateLookup stamps ownership and persists a lookup record. Codes are
// unique per organization.
func CreateLookup[T model.LookupRecord](s *LookupService, scope tenant.Scope, rec T) error {
	if err := repository.StampOnCreate(scope, rec); err != nil {
		return err
	}
	if rec.GetCode() == "" {
		return apperr.Validation("code is required")
	}
	var count int64
	if err := s.db.Model(rec).
		Where("code = ? AND organization_id = ?", rec.GetCode(), rec.GetOrganizationID()).
		Count(&count).Error; err != nil {
		return apperr.Internal(err, "failed to check code uniqueness")
	}
	if count > 0 {
		return apperr.Validation("code %q already exists in this organization", rec.GetCode())
	}
	if err := s.db.Create(rec).Error; err != nil {
		return apperr.Internal(err, "failed to create lookup record")
	}
	return nil
}

// GetLookup loads one record into rec, confined to the caller's
// organization.
func GetLookup[T model.LookupRecord](s *LookupService, scope tenant.Scope, rec T, id uint) error {
	return repository.FindScoped(s.db, scope, rec, id)
}

// ListLookups returns the caller's records of the given type, ordered by
// code. proto only carries the type; its value is ignored.
func ListLookups[T model.LookupRecord](s *LookupService, scope tenant.Scope, proto T) ([]T, error) {
	var out []T
	if err := repository.ScopedQuery(s.db, scope, proto).Order("code").Find(&out).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list lookup records")
	}
	return out, nil
}

// UpdateLookup applies the given column updates to one record. Ownership is
// never updatable; a code change is checked for per-organization collisions.
func UpdateLookup[T model.LookupRecord](s *LookupService, scope tenant.Scope, rec T, id uint, updates map[string]any) error {
	if err := repository.FindScoped(s.db, scope, rec, id); err != nil {
		return err
	}
	if err := repository.AuthorizeMutation(scope, rec); err != nil {
		return err
	}
	delete(updates, "organization_id")
	delete(updates, "id")
	if code, ok := updates["code"].(string); ok {
		if code == "" {
			return apperr.Validation("code is required")
		}
		if code != rec.GetCode() {
			var count int64
			if err := s.db.Model(rec).
				Where("code = ? AND organization_id = ? AND id != ?", code, rec.GetOrganizationID(), rec.GetID()).
				Count(&count).Error; err != nil {
				return apperr.Internal(err, "failed to check code uniqueness")
			}
			if count > 0 {
				return apperr.Validation("code %q already exists in this organization", code)
			}
		}
	}
	if err := s.db.Model(rec).Updates(updates).Error; err != nil {
		return apperr.Internal(err, "failed to update lookup record")
	}
	return nil
}

// DeleteLookup soft-deletes one record.
func DeleteLookup[T model.LookupRecord](s *LookupService, scope tenant.Scope, rec T, id uint) error {
	if err := repository.FindScoped(s.db, scope, rec, id); err != nil {
		return err
	}
	if err := s.db.Delete(rec).Error; err != nil {
		return apperr.Internal(err, "failed to delete lookup record")
	}
	return nil
}

// RestoreLookup reverses a soft delete.
func RestoreLookup[T model.LookupRecord](s *LookupService, scope tenant.Scope, rec T, id uint) error {
	return repository.Restore(s.db, scope, rec, id)
}

// PurgeLookup permanently removes a record. Elevated principals only.
func PurgeLookup[T model.LookupRecord](s *LookupService, scope tenant.Scope, rec T, id uint) error {
	return repository.Purge(s.db, scope, rec, id)
}
