package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymousScopeAuthorizesNothing(t *testing.T) {
	scope := Anonymous()

	assert.False(t, scope.Authenticated())
	assert.False(t, scope.IsElevated())
	assert.False(t, scope.Authorize(1))
	assert.False(t, scope.Authorize(0))

	_, ok := scope.CurrentOrgID()
	assert.False(t, ok)
}

func TestScopeAuthorizesOwnOrganizationOnly(t *testing.T) {
	orgID := uint(7)
	scope := NewScope(42, &orgID, false)

	assert.True(t, scope.Authenticated())
	assert.True(t, scope.Authorize(7))
	assert.False(t, scope.Authorize(8))

	got, ok := scope.CurrentOrgID()
	assert.True(t, ok)
	assert.Equal(t, uint(7), got)
}

func TestElevatedScopeCrossesTenants(t *testing.T) {
	scope := NewScope(1, nil, true)

	assert.True(t, scope.IsElevated())
	assert.True(t, scope.Authorize(1))
	assert.True(t, scope.Authorize(999))

	_, ok := scope.CurrentOrgID()
	assert.False(t, ok)
}

func TestElevatedScopeMayKeepHomeOrganization(t *testing.T) {
	orgID := uint(3)
	scope := NewScope(1, &orgID, true)

	got, ok := scope.CurrentOrgID()
	assert.True(t, ok)
	assert.Equal(t, uint(3), got)
	assert.True(t, scope.Authorize(42))
}

func TestScopeCopiesOrgPointer(t *testing.T) {
	orgID := uint(5)
	scope := NewScope(1, &orgID, false)

	orgID = 99 // mutating the caller's value must not leak into the scope

	got, ok := scope.CurrentOrgID()
	assert.True(t, ok)
	assert.Equal(t, uint(5), got)
}

func TestZeroUserIDIsUnauthenticated(t *testing.T) {
	orgID := uint(1)
	scope := NewScope(0, &orgID, false)

	assert.False(t, scope.Authenticated())
	assert.False(t, scope.Authorize(1))
}
