package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/middleware"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/service"
	"github.com/ikarolaborda/open-asm-sub000/pkg/logger"
	"github.com/ikarolaborda/open-asm-sub000/prometheus"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	IsActive       bool   `json:"is_active"`
	OrganizationID uint   `json:"organization_id"` // honored only for elevated callers
}

func (r *CustomerRequest) toModel() *model.Customer {
	return &model.Customer{
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Code:           r.Code,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		City:           r.City,
		Country:        r.Country,
		IsActive:       r.IsActive,
	}
}

// CustomerHandler exposes the customer service over HTTP.
type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{svc: service.NewCustomerService(db)}
}

// Create creates a new customer for the caller's organization
func (h *CustomerHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("customer", "create")
	scope := middleware.ScopeFromEcho(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	customer := req.toModel()

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.svc.Create(scope, customer); err != nil {
		return respondError(c, err)
	}

	log.Info("Customer created",
		zap.Uint("id", customer.ID),
		zap.String("name", customer.Name),
		zap.Uint("organization_id", customer.OrganizationID))
	return c.JSON(http.StatusCreated, customer)
}

// Get retrieves a customer with contacts and status history
func (h *CustomerHandler) Get(c echo.Context) error {
	prometheus.RecordOperation("customer", "get")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	customer, err := h.svc.Get(scope, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// List retrieves the caller's customers with pagination
func (h *CustomerHandler) List(c echo.Context) error {
	prometheus.RecordOperation("customer", "list")
	scope := middleware.ScopeFromEcho(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	customers, total, err := h.svc.List(scope, limit, (page-1)*limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"customers": customers,
		"pagination": echo.Map{
			"current_page": page,
			"limit":        limit,
			"total":        total,
			"total_pages":  (int(total) + limit - 1) / limit,
		},
	})
}

// Update updates an existing customer
func (h *CustomerHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("customer", "update")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	customer, err := h.svc.Update(scope, id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Customer updated", zap.Uint("id", customer.ID))
	return c.JSON(http.StatusOK, customer)
}

// SetStatus moves the customer's exclusive current-status pointer
func (h *CustomerHandler) SetStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("customer", "set_status")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req struct {
		StatusID uint `json:"status_id"`
	}
	if err := c.Bind(&req); err != nil || req.StatusID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status_id is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.SetCurrentStatus(scope, id, req.StatusID); err != nil {
		return respondError(c, err)
	}

	log.Info("Customer status updated",
		zap.Uint("customer_id", id),
		zap.Uint("status_id", req.StatusID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated successfully"})
}

// GetStatus returns the customer's current status
func (h *CustomerHandler) GetStatus(c echo.Context) error {
	prometheus.RecordOperation("customer", "get_status")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	status, err := h.svc.CurrentStatus(scope, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// AddContact links a contact to the customer
func (h *CustomerHandler) AddContact(c echo.Context) error {
	prometheus.RecordOperation("customer", "add_contact")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var contact model.Contact
	if err := c.Bind(&contact); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.svc.AddContact(scope, id, &contact); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// Delete soft-deletes a customer unless it still owns active assets
func (h *CustomerHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("customer", "delete")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.Delete(scope, id); err != nil {
		return respondError(c, err)
	}

	log.Info("Customer deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted successfully"})
}

// Restore reverses a soft delete
func (h *CustomerHandler) Restore(c echo.Context) error {
	prometheus.RecordOperation("customer", "restore")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.Restore(scope, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer restored successfully"})
}

// Purge permanently removes a customer (elevated principals only)
func (h *CustomerHandler) Purge(c echo.Context) error {
	prometheus.RecordOperation("customer", "purge")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.Purge(scope, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer permanently removed"})
}
