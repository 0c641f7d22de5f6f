package security

import (
	"testing"
	"time"

	"trackside/training-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		JWTSecret:       "test-secret",
		AccessLifetime:  30 * time.Minute,
		RefreshLifetime: 7 * 24 * time.Hour,
	}
}

func TestMakeAndParseAccess(t *testing.T) {
	maker := NewTokenMaker(testAuthConfig())

	token, err := maker.MakeAccess("user-1")
	require.NoError(t, err)

	claims, err := maker.Parse(token, TokenTypeAccess)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongType(t *testing.T) {
	maker := NewTokenMaker(testAuthConfig())

	access, err := maker.MakeAccess("user-1")
	require.NoError(t, err)

	_, err = maker.Parse(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessLifetime = -time.Minute

	maker := NewTokenMaker(cfg)

	token, err := maker.MakeAccess("user-1")
	require.NoError(t, err)

	_, err = maker.Parse(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	maker := NewTokenMaker(testAuthConfig())

	other := testAuthConfig()
	other.JWTSecret = "different-secret"

	token, err := NewTokenMaker(other).MakeAccess("user-1")
	require.NoError(t, err)

	_, err = maker.Parse(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshCarriesJTI(t *testing.T) {
	maker := NewTokenMaker(testAuthConfig())

	token, jti, err := maker.MakeRefresh("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := maker.Parse(token, TokenTypeRefresh)
	require.NoError(t, err)

	assert.Equal(t, jti, claims.ID)
}
