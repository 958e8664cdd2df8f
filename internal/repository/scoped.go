// Package repository is the tenant isolation layer. Every read against a
// tenant-owned table goes through ScopedQuery, which conjoins the caller's
// organization predicate, and every write goes through StampOnCreate or an
// ownership re-check. The tenant scope is a required argument at each call
// site, so forgetting it is a compile error rather than a runtime leak.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

// ScopedQuery returns a query over m confined to the scope's organization.
// Elevated scopes see all organizations. A scope without an organization
// (anonymous, or elevated-without-home-org acting non-elevated) matches
// nothing: the layer fails closed, not open.
func ScopedQuery(db *gorm.DB, scope tenant.Scope, m interface{}) *gorm.DB {
	q := db.Model(m)
	if scope.IsElevated() {
		return q
	}
	if orgID, ok := scope.CurrentOrgID(); ok {
		return q.Where("organization_id = ?", orgID)
	}
	return q.Where("1 = 0")
}

// StampOnCreate fills the entity's organization from the scope when the
// payload omits it. Non-elevated callers can never create rows for a foreign
// organization: whatever the payload says, ownership is forced to the
// caller's organization. Elevated callers must name a target organization
// explicitly; inferring one would make cross-tenant writes ambiguous.
func StampOnCreate(scope tenant.Scope, e model.TenantOwned) error {
	if !scope.Authenticated() {
		return apperr.Validation("organization is required")
	}
	if scope.IsElevated() {
		if e.GetOrganizationID() == 0 {
			return apperr.Validation("organization is required for elevated writes")
		}
		return nil
	}
	orgID, ok := scope.CurrentOrgID()
	if !ok {
		return apperr.Validation("organization is required")
	}
	e.SetOrganizationID(orgID)
	return nil
}

// AuthorizeMutation re-checks ownership before an update or delete. A
// mismatch yields a not-found error, never an authorization error, so a
// non-owning tenant cannot distinguish "exists elsewhere" from "does not
// exist".
func AuthorizeMutation(scope tenant.Scope, e model.TenantOwned) error {
	if !scope.Authorize(e.GetOrganizationID()) {
		return apperr.NotFound("record not found")
	}
	return nil
}

// FindScoped loads the entity with the given id into dest, confined to the
// caller's organization. Absent and foreign rows are both not-found.
func FindScoped(db *gorm.DB, scope tenant.Scope, dest model.TenantOwned, id uint) error {
	err := ScopedQuery(db, scope, dest).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("record not found")
	}
	if err != nil {
		return apperr.Internal(err, "query failed")
	}
	return nil
}

// Restore reverses a soft delete. The row is looked up unscoped (it is
// hidden from standard reads) but ownership is still re-checked.
func Restore(db *gorm.DB, scope tenant.Scope, dest model.TenantOwned, id uint) error {
	err := db.Unscoped().Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("record not found")
	}
	if err != nil {
		return apperr.Internal(err, "query failed")
	}
	if err := AuthorizeMutation(scope, dest); err != nil {
		return err
	}
	if err := db.Unscoped().Model(dest).Update("deleted_at", nil).Error; err != nil {
		return apperr.Internal(err, "restore failed")
	}
	return nil
}

// Purge permanently removes a row. Purge is irreversible and restricted to
// elevated principals; a soft delete is the standard path for everyone else.
func Purge(db *gorm.DB, scope tenant.Scope, dest model.TenantOwned, id uint) error {
	if !scope.IsElevated() {
		return apperr.Authorization("permanent deletion requires elevation")
	}
	err := db.Unscoped().Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("record not found")
	}
	if err != nil {
		return apperr.Internal(err, "query failed")
	}
	if err := db.Unscoped().Delete(dest).Error; err != nil {
		return apperr.Internal(err, "purge failed")
	}
	return nil
}
