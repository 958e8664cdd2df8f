package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

type contextKey string

const loggerKey contextKey = "logger"

// FromContext retrieves the request logger from the context, falling back
// to the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return log
}

// WithContext stores the request logger in the context.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromEcho retrieves the request logger from the Echo context, falling back
// to the global logger.
func FromEcho(c echo.Context) *zap.Logger {
	log, ok := c.Get("logger").(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return log
}

// WithScope returns a child logger carrying the request's tenant identity:
// user_id, organization_id and, for super-admins, the elevation marker.
// An anonymous scope adds no fields.
func WithScope(log *zap.Logger, scope tenant.Scope) *zap.Logger {
	if userID := scope.UserID(); userID != 0 {
		log = log.With(zap.Uint("user_id", userID))
	}
	if orgID, ok := scope.CurrentOrgID(); ok {
		log = log.With(zap.Uint("organization_id", orgID))
	}
	if scope.IsElevated() {
		log = log.With(zap.Bool("super_admin", true))
	}
	return log
}
