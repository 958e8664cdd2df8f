package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/repository"
	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

// CustomerService owns customer records and the exclusive current-status
// pointer over their status history.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// Create stamps ownership and persists the customer. Codes are unique per
// organization.
func (s *CustomerService) Create(scope tenant.Scope, c *model.Customer) error {
	if err := repository.StampOnCreate(scope, c); err != nil {
		return err
	}
	if c.Name == "" {
		return apperr.Validation("name is required")
	}
	if c.Code != "" {
		var count int64
		if err := s.db.Model(&model.Customer{}).
			Where("code = ? AND organization_id = ?", c.Code, c.OrganizationID).
			Count(&count).Error; err != nil {
			return apperr.Internal(err, "failed to check customer code uniqueness")
		}
		if count > 0 {
			return apperr.Validation("customer code already exists in this organization")
		}
	}
	c.CreatedBy = scope.UserID()
	c.UpdatedBy = scope.UserID()
	if err := s.db.Omit("Statuses", "Contacts").Create(c).Error; err != nil {
		return apperr.Internal(err, "failed to create customer")
	}
	return nil
}

// Get returns one customer with contacts and status history.
func (s *CustomerService) Get(scope tenant.Scope, id uint) (*model.Customer, error) {
	var c model.Customer
	q := repository.ScopedQuery(s.db, scope, &model.Customer{}).
		Preload("Contacts").
		Preload("Statuses").
		Preload("Statuses.Status")
	if err := q.Where("customers.id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer not found")
		}
		return nil, apperr.Internal(err, "failed to load customer")
	}
	return &c, nil
}

// List returns the caller's customers plus the unpaginated total.
func (s *CustomerService) List(scope tenant.Scope, limit, offset int) ([]model.Customer, int64, error) {
	q := repository.ScopedQuery(s.db, scope, &model.Customer{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err, "failed to count customers")
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var customers []model.Customer
	if err := q.Order("created_at desc").Find(&customers).Error; err != nil {
		return nil, 0, apperr.Internal(err, "failed to list customers")
	}
	return customers, total, nil
}

// Update overwrites the customer's editable fields. Ownership never changes.
func (s *CustomerService) Update(scope tenant.Scope, id uint, in *model.Customer) (*model.Customer, error) {
	var c model.Customer
	if err := repository.FindScoped(s.db, scope, &c, id); err != nil {
		return nil, err
	}
	if err := repository.AuthorizeMutation(scope, &c); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if in.Code != "" && in.Code != c.Code {
		var count int64
		if err := s.db.Model(&model.Customer{}).
			Where("code = ? AND organization_id = ? AND id != ?", in.Code, c.OrganizationID, c.ID).
			Count(&count).Error; err != nil {
			return nil, apperr.Internal(err, "failed to check customer code uniqueness")
		}
		if count > 0 {
			return nil, apperr.Validation("customer code already exists in this organization")
		}
	}

	c.Name = in.Name
	c.Code = in.Code
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.Country = in.Country
	c.IsActive = in.IsActive
	c.UpdatedBy = scope.UserID()

	if err := s.db.Omit("Statuses", "Contacts").Save(&c).Error; err != nil {
		return nil, apperr.Internal(err, "failed to update customer")
	}
	return &c, nil
}

// SetCurrentStatus moves the customer's exclusive current-status pointer.
// One transaction clears every existing flag for the customer, then inserts
// or updates the association to statusID with the flag set; partial
// application is never observable. The status must belong to the customer's
// organization.
func (s *CustomerService) SetCurrentStatus(scope tenant.Scope, customerID, statusID uint) error {
	var c model.Customer
	if err := repository.FindScoped(s.db, scope, &c, customerID); err != nil {
		return err
	}

	var status model.Status
	if err := s.db.First(&status, statusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("status does not exist")
		}
		return apperr.Internal(err, "failed to load status")
	}
	if status.OrganizationID != c.OrganizationID {
		return apperr.Validation("status does not belong to the customer's organization")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CustomerStatus{}).
			Where("customer_id = ?", c.ID).
			Update("is_current", false).Error; err != nil {
			return apperr.Internal(err, "failed to clear current status")
		}

		var assoc model.CustomerStatus
		err := tx.Where("customer_id = ? AND status_id = ?", c.ID, status.ID).First(&assoc).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			assoc = model.CustomerStatus{CustomerID: c.ID, StatusID: status.ID, IsCurrent: true}
			if err := tx.Create(&assoc).Error; err != nil {
				return apperr.Internal(err, "failed to create status association")
			}
		case err != nil:
			return apperr.Internal(err, "failed to load status association")
		default:
			if err := tx.Model(&assoc).Update("is_current", true).Error; err != nil {
				return apperr.Internal(err, "failed to set current status")
			}
		}
		return nil
	})
}

// CurrentStatus returns the status currently flagged for the customer, or
// not-found when the customer has no current status.
func (s *CustomerService) CurrentStatus(scope tenant.Scope, customerID uint) (*model.Status, error) {
	var c model.Customer
	if err := repository.FindScoped(s.db, scope, &c, customerID); err != nil {
		return nil, err
	}
	var assoc model.CustomerStatus
	err := s.db.Preload("Status").
		Where("customer_id = ? AND is_current = ?", c.ID, true).
		First(&assoc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("customer has no current status")
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load current status")
	}
	return &assoc.Status, nil
}

// AddContact links a contact to the customer, creating the contact inside
// the customer's organization when it is new.
func (s *CustomerService) AddContact(scope tenant.Scope, customerID uint, contact *model.Contact) error {
	var c model.Customer
	if err := repository.FindScoped(s.db, scope, &c, customerID); err != nil {
		return err
	}
	if contact.Name == "" {
		return apperr.Validation("contact name is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if contact.ID == 0 {
			contact.SetOrganizationID(c.OrganizationID)
			if err := tx.Create(contact).Error; err != nil {
				return apperr.Internal(err, "failed to create contact")
			}
		} else if contact.GetOrganizationID() != c.OrganizationID {
			return apperr.Validation("contact does not belong to the customer's organization")
		}
		if err := tx.Model(&c).Association("Contacts").Append(contact); err != nil {
			return apperr.Internal(err, "failed to link contact")
		}
		return nil
	})
}

// Delete soft-deletes the customer. A customer that still owns active assets
// cannot be deleted.
func (s *CustomerService) Delete(scope tenant.Scope, id uint) error {
	var c model.Customer
	if err := repository.FindScoped(s.db, scope, &c, id); err != nil {
		return err
	}
	var activeAssets int64
	s.db.Model(&model.Asset{}).
		Where("customer_id = ? AND is_active = ?", c.ID, true).
		Count(&activeAssets)
	if activeAssets > 0 {
		return apperr.Conflict("customer still has %d active assets", activeAssets)
	}
	if err := s.db.Delete(&c).Error; err != nil {
		return apperr.Internal(err, "failed to delete customer")
	}
	return nil
}

// Restore reverses a soft delete.
func (s *CustomerService) Restore(scope tenant.Scope, id uint) error {
	var c model.Customer
	return repository.Restore(s.db, scope, &c, id)
}

// Purge permanently removes a customer. Elevated principals only.
func (s *CustomerService) Purge(scope tenant.Scope, id uint) error {
	var c model.Customer
	return repository.Purge(s.db, scope, &c, id)
}
