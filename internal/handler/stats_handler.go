package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/middleware"
	"github.com/ikarolaborda/open-asm-sub000/internal/service"
	"github.com/ikarolaborda/open-asm-sub000/pkg/config"
	"github.com/ikarolaborda/open-asm-sub000/prometheus"
)

// StatsHandler serves the per-organization statistics rollup.
type StatsHandler struct {
	svc      *service.StatsService
	defaults config.StatsConfig
}

func NewStatsHandler(db *gorm.DB, defaults config.StatsConfig) *StatsHandler {
	return &StatsHandler{svc: service.NewStatsService(db), defaults: defaults}
}

// Snapshot computes the organization rollup. Elevated callers name the
// target via ?organization_id=; everyone else gets their own organization.
func (h *StatsHandler) Snapshot(c echo.Context) error {
	prometheus.RecordOperation("stats", "snapshot")
	scope := middleware.ScopeFromEcho(c)

	var orgID uint
	if raw := c.QueryParam("organization_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization_id"})
		}
		orgID = uint(parsed)
	}

	opts := service.SnapshotOptions{
		LowScoreThreshold: h.defaults.LowScoreThreshold,
		TopCustomers:      h.defaults.TopCustomers,
	}
	if raw := c.QueryParam("low_score_threshold"); raw != "" {
		opts.LowScoreThreshold, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("top_customers"); raw != "" {
		opts.TopCustomers, _ = strconv.Atoi(raw)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	snap, err := h.svc.Snapshot(scope, orgID, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}
