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

// WarrantyRequest defines the structure for warranty creation/update requests
type WarrantyRequest struct {
	AssetID        uint       `json:"asset_id"`
	CoverageID     *uint      `json:"coverage_id"`
	ServiceLevelID *uint      `json:"service_level_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	IsActive       bool       `json:"is_active"`
	Cost           float64   `json:"cost"`
}

func (r *WarrantyRequest) toModel() *model.Warranty {
	return &model.Warranty{
		AssetID:        r.AssetID,
		CoverageID:     r.CoverageID,
		ServiceLevelID: r.ServiceLevelID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IsActive:       r.IsActive,
		Cost:           r.Cost,
	}
}

// WarrantyHandler exposes the warranty service over HTTP.
type WarrantyHandler struct {
	svc *service.WarrantyService
}

func NewWarrantyHandler(db *gorm.DB) *WarrantyHandler {
	return &WarrantyHandler{svc: service.NewWarrantyService(db)}
}

// Create attaches a new warranty to an asset
func (h *WarrantyHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("warranty", "create")
	scope := middleware.ScopeFromEcho(c)

	var req WarrantyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	w := req.toModel()

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.svc.Create(scope, w); err != nil {
		return respondError(c, err)
	}

	log.Info("Warranty created",
		zap.Uint("id", w.ID),
		zap.Uint("asset_id", w.AssetID))
	return c.JSON(http.StatusCreated, w)
}

// Get retrieves a single warranty
func (h *WarrantyHandler) Get(c echo.Context) error {
	prometheus.RecordOperation("warranty", "get")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	w, err := h.svc.Get(scope, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

// ListByAsset retrieves an asset's warranties, optionally filtered by
// ?filter=expired|expiring_soon|active
func (h *WarrantyHandler) ListByAsset(c echo.Context) error {
	prometheus.RecordOperation("warranty", "list")
	scope := middleware.ScopeFromEcho(c)

	assetID, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	warranties, err := h.svc.ListByAsset(scope, assetID, c.QueryParam("filter"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"warranties": warranties})
}

// Update updates a warranty's editable fields
func (h *WarrantyHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("warranty", "update")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req WarrantyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	w, err := h.svc.Update(scope, id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Warranty updated", zap.Uint("id", w.ID))
	return c.JSON(http.StatusOK, w)
}

// Delete soft-deletes a warranty
func (h *WarrantyHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("warranty", "delete")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.Delete(scope, id); err != nil {
		return respondError(c, err)
	}

	log.Info("Warranty deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Warranty deleted successfully"})
}

// Restore reverses a soft delete
func (h *WarrantyHandler) Restore(c echo.Context) error {
	prometheus.RecordOperation("warranty", "restore")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.Restore(scope, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Warranty restored successfully"})
}

// Purge permanently removes a warranty (elevated principals only)
func (h *WarrantyHandler) Purge(c echo.Context) error {
	prometheus.RecordOperation("warranty", "purge")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.Purge(scope, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Warranty permanently removed"})
}
