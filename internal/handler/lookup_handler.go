package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ikarolaborda/open-asm-sub000/internal/middleware"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/service"
	"github.com/ikarolaborda/open-asm-sub000/pkg/logger"
	"github.com/ikarolaborda/open-asm-sub000/prometheus"
)

// lookupPtr constrains a lookup handler to pointer types that satisfy the
// lookup record contract, so new records can be allocated generically.
type lookupPtr[T any] interface {
	*T
	model.LookupRecord
}

// RegisterLookupRoutes mounts the shared CRUD surface for one lookup table
// under the given group, e.g. RegisterLookupRoutes[model.Status](g, svc,
// "status") serves /statuses.
func RegisterLookupRoutes[T any, PT lookupPtr[T]](g *echo.Group, svc *service.LookupService, entity string) {
	h := &lookupHandler[T, PT]{svc: svc, entity: entity}
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/restore", h.Restore)
	g.DELETE("/:id/purge", h.Purge)
}

type lookupHandler[T any, PT lookupPtr[T]] struct {
	svc    *service.LookupService
	entity string
}

func (h *lookupHandler[T, PT]) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation(h.entity, "create")
	scope := middleware.ScopeFromEcho(c)

	rec := PT(new(T))
	if err := c.Bind(rec); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := service.CreateLookup(h.svc, scope, rec); err != nil {
		return respondError(c, err)
	}

	log.Info("Lookup record created",
		zap.String("entity", h.entity),
		zap.Uint("id", rec.GetID()),
		zap.String("code", rec.GetCode()))
	return c.JSON(http.StatusCreated, rec)
}

func (h *lookupHandler[T, PT]) Get(c echo.Context) error {
	prometheus.RecordOperation(h.entity, "get")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	rec := PT(new(T))
	if err := service.GetLookup(h.svc, scope, rec, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *lookupHandler[T, PT]) List(c echo.Context) error {
	prometheus.RecordOperation(h.entity, "list")
	scope := middleware.ScopeFromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	records, err := service.ListLookups(h.svc, scope, PT(new(T)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"records": records})
}

func (h *lookupHandler[T, PT]) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOperation(h.entity, "update")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	rec := PT(new(T))
	if err := service.UpdateLookup(h.svc, scope, rec, id, updates); err != nil {
		return respondError(c, err)
	}

	log.Info("Lookup record updated",
		zap.String("entity", h.entity),
		zap.Uint("id", id))
	return c.JSON(http.StatusOK, rec)
}

func (h *lookupHandler[T, PT]) Delete(c echo.Context) error {
	prometheus.RecordOperation(h.entity, "delete")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := service.DeleteLookup(h.svc, scope, PT(new(T)), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Record deleted successfully"})
}

func (h *lookupHandler[T, PT]) Restore(c echo.Context) error {
	prometheus.RecordOperation(h.entity, "restore")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := service.RestoreLookup(h.svc, scope, PT(new(T)), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Record restored successfully"})
}

func (h *lookupHandler[T, PT]) Purge(c echo.Context) error {
	prometheus.RecordOperation(h.entity, "purge")
	scope := middleware.ScopeFromEcho(c)

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := service.PurgeLookup(h.svc, scope, PT(new(T)), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Record permanently removed"})
}
