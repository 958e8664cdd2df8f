package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

// OrganizationService manages tenants themselves. Creating or listing
// foreign organizations is inherently cross-tenant and requires elevation.
type OrganizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

// Create registers a new organization. Elevated principals only.
func (s *OrganizationService) Create(scope tenant.Scope, org *model.Organization) error {
	if !scope.IsElevated() {
		return apperr.Authorization("creating organizations requires elevation")
	}
	if org.Name == "" {
		return apperr.Validation("name is required")
	}
	if org.Code != "" {
		var count int64
		if err := s.db.Model(&model.Organization{}).Where("code = ?", org.Code).
			Count(&count).Error; err != nil {
			return apperr.Internal(err, "failed to check organization code uniqueness")
		}
		if count > 0 {
			return apperr.Validation("organization code already exists")
		}
	}
	org.Active = true
	if err := s.db.Create(org).Error; err != nil {
		return apperr.Internal(err, "failed to create organization")
	}
	return nil
}

// Get returns one organization. Non-elevated callers can only see their own.
func (s *OrganizationService) Get(scope tenant.Scope, id uint) (*model.Organization, error) {
	if !scope.Authorize(id) {
		return nil, apperr.NotFound("organization not found")
	}
	var org model.Organization
	if err := s.db.First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization not found")
		}
		return nil, apperr.Internal(err, "failed to load organization")
	}
	return &org, nil
}

// List returns all organizations for elevated callers, or just the caller's
// own organization otherwise.
func (s *OrganizationService) List(scope tenant.Scope) ([]model.Organization, error) {
	var orgs []model.Organization
	q := s.db.Model(&model.Organization{})
	if !scope.IsElevated() {
		orgID, ok := scope.CurrentOrgID()
		if !ok {
			return nil, apperr.NotFound("organization not found")
		}
		q = q.Where("id = ?", orgID)
	}
	if err := q.Order("name").Find(&orgs).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list organizations")
	}
	return orgs, nil
}

// SetActive flips the organization's activation flag.
func (s *OrganizationService) SetActive(scope tenant.Scope, id uint, active bool) error {
	org, err := s.Get(scope, id)
	if err != nil {
		return err
	}
	if err := s.db.Model(org).Update("active", active).Error; err != nil {
		return apperr.Internal(err, "failed to update organization")
	}
	return nil
}
