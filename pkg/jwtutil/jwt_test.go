package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikarolaborda/open-asm-sub000/pkg/config"
)

func testUtil() *JWTUtil {
	return NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
}

func TestGenerateAndValidateToken(t *testing.T) {
	util := testUtil()
	orgID := uint(7)

	token, err := util.GenerateToken("user@example.com", 42, &orgID, "Org Seven", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, uint(42), claims.UserID)
	require.NotNil(t, claims.OrganizationID)
	assert.Equal(t, uint(7), *claims.OrganizationID)
	assert.Equal(t, "Org Seven", claims.OrganizationName)
	assert.False(t, claims.IsSuperAdmin)
}

func TestSuperAdminTokenCarriesNoOrganization(t *testing.T) {
	util := testUtil()

	token, err := util.GenerateToken("admin@example.com", 1, nil, "", true)
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.OrganizationID)
	assert.True(t, claims.IsSuperAdmin)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	token, err := testUtil().GenerateToken("user@example.com", 1, nil, "", false)
	require.NoError(t, err)

	other := NewJWTUtil(&config.JWTConfig{SigningKey: "different-key", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := testUtil().ValidateToken("not.a.token")
	assert.Error(t, err)
}
