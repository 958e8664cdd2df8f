package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ikarolaborda/open-asm-sub000/internal/apperr"
	"github.com/ikarolaborda/open-asm-sub000/pkg/logger"
)

// respondError maps a service error kind onto an HTTP status and renders the
// caller-safe message. Internal errors are logged with their cause; the
// cause never reaches the client.
func respondError(c echo.Context, err error) error {
	log := logger.FromEcho(c)

	var status int
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		log.Error("Request failed", zap.Error(err))
	} else {
		log.Warn("Request rejected", zap.String("reason", apperr.MessageOf(err)))
	}
	return c.JSON(status, echo.Map{"error": apperr.MessageOf(err)})
}
