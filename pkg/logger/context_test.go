package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ikarolaborda/open-asm-sub000/internal/tenant"
)

func TestWithScopeAttachesTenantFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orgID := uint(7)

	WithScope(zap.New(core), tenant.NewScope(42, &orgID, false)).Info("request")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, uint64(42), fields["user_id"])
	assert.Equal(t, uint64(7), fields["organization_id"])
	_, hasElevation := fields["super_admin"]
	assert.False(t, hasElevation)
}

func TestWithScopeMarksElevation(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithScope(zap.New(core), tenant.NewScope(1, nil, true)).Info("request")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, true, fields["super_admin"])
	_, hasOrg := fields["organization_id"]
	assert.False(t, hasOrg)
}

func TestWithScopeAnonymousAddsNothing(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithScope(zap.New(core), tenant.Anonymous()).Info("request")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].ContextMap())
}
