package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseSessionToken(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "user@example.com", "User")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "User", claims.Role)
}

func TestParseSessionTokenRejectsTampering(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "user@example.com", "User")
	require.NoError(t, err)

	_, err = ParseSessionToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	_, err := ParseSessionToken("definitely-not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value", true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(SessionMaxAge.Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
