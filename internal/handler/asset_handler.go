package handler

import (
	"errors"
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

// AssetRequest defines the structure for asset creation/update requests.
// quality_score is deliberately absent: the score is derived server-side.
type AssetRequest struct {
	Name           string        `json:"name"`
	SerialNumber   string        `json:"serial_number"`
	AssetTag       string        `json:"asset_tag"`
	ModelNumber    string        `json:"model_number"`
	PartNumber     string        `json:"part_number"`
	Description    string        `json:"description"`
	CustomerID     uint          `json:"customer_id"`
	LocationID     *uint         `json:"location_id"`
	ManufacturerID *uint         `json:"manufacturer_id"`
	ProductID      *uint         `json:"product_id"`
	TypeID         *uint         `json:"type_id"`
	StatusID       *uint         `json:"status_id"`
	PurchaseDate   *time.Time    `json:"purchase_date"`
	InstallDate    *time.Time    `json:"install_date"`
	WarrantyStart  *time.Time    `json:"warranty_start_date"`
	WarrantyEnd    *time.Time    `json:"warranty_end_date"`
	PurchasePrice  float64       `json:"purchase_price"`
	IsActive       bool          `json:"is_active"`
	Metadata       model.JSONMap `json:"metadata"`
	OrganizationID uint          `json:"organization_id"` // honored only for elevated callers
}

func (r *AssetRequest) toModel() *model.Asset {
	return &model.Asset{
		OrganizationID:    r.OrganizationID,
		CustomerID:        r.CustomerID,
		LocationID:        r.LocationID,
		ManufacturerID:    r.ManufacturerID,
		ProductID:         r.ProductID,
		TypeID:            r.TypeID,
		StatusID:          r.StatusID,
		Name:              r.Name,
		SerialNumber:      r.SerialNumber,
		AssetTag:          r.AssetTag,
		ModelNumber:       r.ModelNumber,
		PartNumber:        r.PartNumber,
		Description:       r.Description,
		PurchaseDate:      r.PurchaseDate,
		InstallDate:       r.InstallDate,
		WarrantyStartDate: r.WarrantyStart,
		WarrantyEndDate:   r.WarrantyEnd,
		PurchasePrice:     r.PurchasePrice,
		IsActive:          r.IsActive,
		Metadata:          r.Metadata,
	}
}

// AssetHandler exposes the asset service over HTTP.
type AssetHandler struct {
	svc *service.AssetService
	db  *gorm.DB
}

func NewAssetHandler(db *gorm.DB) *AssetHandler {
	return &AssetHandler{svc: service.NewAssetService(db), db: db}
}

// Create creates a new asset for the caller's organization
func (h *AssetHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("asset", "create")
	scope := middleware.ScopeFromEcho(c)

	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	asset := req.toModel()

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.svc.Create(scope, asset); err != nil {
		return respondError(c, err)
	}

	go h.updateAssetCount(asset.OrganizationID)

	log.Info("Asset created",
		zap.Uint("id", asset.ID),
		zap.String("name", asset.Name),
		zap.Int("quality_score", asset.QualityScore),
		zap.Uint("organization_id", asset.OrganizationID))
	return c.JSON(http.StatusCreated, asset)
}

// Get retrieves an asset with its derived warranty status
func (h *AssetHandler) Get(c echo.Context) error {
	prometheus.RecordOperation("asset", "get")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	view, err := h.svc.Get(scope, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// List retrieves the caller's assets with pagination and filters
func (h *AssetHandler) List(c echo.Context) error {
	prometheus.RecordOperation("asset", "list")
	scope := middleware.ScopeFromEcho(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := service.AssetFilter{
		Limit:          limit,
		Offset:         (page - 1) * limit,
		WarrantyFilter: c.QueryParam("warranty"),
	}
	if v := c.QueryParam("customer_id"); v != "" {
		id, _ := strconv.ParseUint(v, 10, 32)
		filter.CustomerID = uint(id)
	}
	if v := c.QueryParam("type_id"); v != "" {
		id, _ := strconv.ParseUint(v, 10, 32)
		filter.TypeID = uint(id)
	}
	if v := c.QueryParam("is_active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			filter.IsActive = &active
		}
	}
	if v := c.QueryParam("score_below"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil {
			filter.ScoreBelow = &threshold
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	assets, total, err := h.svc.List(scope, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"assets": assets,
		"pagination": echo.Map{
			"current_page": page,
			"limit":        limit,
			"total":        total,
			"total_pages":  (int(total) + limit - 1) / limit,
		},
	})
}

// Update updates an existing asset and recomputes its quality score
func (h *AssetHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("asset", "update")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	asset, err := h.svc.Update(scope, id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Asset updated",
		zap.Uint("id", asset.ID),
		zap.Int("quality_score", asset.QualityScore))
	return c.JSON(http.StatusOK, asset)
}

// PatchMetadata merges a partial metadata document into the asset
func (h *AssetHandler) PatchMetadata(c echo.Context) error {
	prometheus.RecordOperation("asset", "patch_metadata")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var patch model.JSONMap
	if err := c.Bind(&patch); err != nil {
		if errors.Is(err, model.ErrNotJSONObject) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": model.ErrNotJSONObject.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid metadata document"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	asset, err := h.svc.PatchMetadata(scope, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// SyncTags replaces the asset's tag set
func (h *AssetHandler) SyncTags(c echo.Context) error {
	prometheus.RecordOperation("asset", "sync_tags")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req struct {
		TagIDs []uint `json:"tag_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.SyncTags(scope, id, req.TagIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tags updated successfully"})
}

// Delete soft-deletes an asset
func (h *AssetHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("asset", "delete")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.Delete(scope, id); err != nil {
		return respondError(c, err)
	}

	if orgID, ok := scope.CurrentOrgID(); ok {
		go h.updateAssetCount(orgID)
	}

	log.Info("Asset deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Asset deleted successfully"})
}

// Restore reverses a soft delete
func (h *AssetHandler) Restore(c echo.Context) error {
	prometheus.RecordOperation("asset", "restore")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.Restore(scope, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Asset restored successfully"})
}

// Purge permanently removes an asset (elevated principals only)
func (h *AssetHandler) Purge(c echo.Context) error {
	prometheus.RecordOperation("asset", "purge")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.Purge(scope, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Asset permanently removed"})
}

// BulkActivation flips the activation flag on all assets in an organization
func (h *AssetHandler) BulkActivation(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation("asset", "bulk_activation")
	scope := middleware.ScopeFromEcho(c)

	var req struct {
		OrganizationID uint `json:"organization_id"`
		Active         bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.OrganizationID == 0 {
		if orgID, ok := scope.CurrentOrgID(); ok {
			req.OrganizationID = orgID
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	affected, err := h.svc.BulkSetActive(scope, req.OrganizationID, req.Active)
	if err != nil {
		return respondError(c, err)
	}

	go h.updateAssetCount(req.OrganizationID)

	log.Info("Bulk activation applied",
		zap.Uint("organization_id", req.OrganizationID),
		zap.Bool("active", req.Active),
		zap.Int64("affected", affected))
	return c.JSON(http.StatusOK, echo.Map{"affected": affected})
}

// updateAssetCount refreshes the per-organization asset gauges.
func (h *AssetHandler) updateAssetCount(orgID uint) {
	var orgName string
	row := h.db.Table("organizations").Select("name").Where("id = ?", orgID).Row()
	_ = row.Scan(&orgName)

	var count int64
	h.db.Model(&model.Asset{}).
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Count(&count)
	prometheus.UpdateAssetsPerOrganization(orgID, orgName, int(count))

	var activeOrgs int64
	h.db.Model(&model.Asset{}).
		Distinct("organization_id").
		Where("is_active = ?", true).
		Count(&activeOrgs)
	prometheus.UpdateActiveOrganizations(int(activeOrgs))
}

// parseID extracts the :id path parameter, writing a 400 response when it
// is not a number.
func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
