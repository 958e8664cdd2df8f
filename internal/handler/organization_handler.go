package handler

import (
	"net/http"
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

// OrganizationHandler exposes tenant management over HTTP.
type OrganizationHandler struct {
	svc *service.OrganizationService
	db  *gorm.DB
}

func NewOrganizationHandler(db *gorm.DB) *OrganizationHandler {
	return &OrganizationHandler{svc: service.NewOrganizationService(db), db: db}
}

// Create registers a new organization (elevated principals only)
func (h *OrganizationHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("organization", "create")
	scope := middleware.ScopeFromEcho(c)

	var org model.Organization
	if err := c.Bind(&org); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.svc.Create(scope, &org); err != nil {
		return respondError(c, err)
	}

	go h.updateActiveCount()

	log.Info("Organization created",
		zap.Uint("id", org.ID),
		zap.String("name", org.Name))
	return c.JSON(http.StatusCreated, org)
}

// Get retrieves one organization
func (h *OrganizationHandler) Get(c echo.Context) error {
	prometheus.RecordOperation("organization", "get")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	org, err := h.svc.Get(scope, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, org)
}

// List returns all organizations for elevated callers, or only the caller's own
func (h *OrganizationHandler) List(c echo.Context) error {
	prometheus.RecordOperation("organization", "list")
	scope := middleware.ScopeFromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	orgs, err := h.svc.List(scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"organizations": orgs})
}

// SetActive flips the organization's activation flag
func (h *OrganizationHandler) SetActive(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("organization", "set_active")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.SetActive(scope, id, req.Active); err != nil {
		return respondError(c, err)
	}

	go h.updateActiveCount()

	log.Info("Organization activation changed",
		zap.Uint("id", id),
		zap.Bool("active", req.Active))
	return c.JSON(http.StatusOK, echo.Map{"message": "Organization updated successfully"})
}

func (h *OrganizationHandler) updateActiveCount() {
	var count int64
	if err := h.db.Model(&model.Organization{}).Where("active = ?", true).Count(&count).Error; err != nil {
		return
	}
	prometheus.UpdateActiveOrganizations(int(count))
}
