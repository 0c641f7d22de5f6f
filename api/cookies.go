package api

import (
	"net/http"

	"trackside/training-api/service"

	"github.com/gin-gonic/gin"
)

// setTokenCookies delivers a freshly minted pair as two HttpOnly
// cookies with max-age matching each token's lifetime.
func (a *API) setTokenCookies(c *gin.Context, pair *service.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", pair.Access, int(a.Tokens.Maker().AccessLifetime().Seconds()), "/", "", a.Auth.SecureCookies, true)
	c.SetCookie("refresh_token", pair.Refresh, int(a.Tokens.Maker().RefreshLifetime().Seconds()), "/", "", a.Auth.SecureCookies, true)
}

// clearTokenCookies issues deletion instructions for both token
// cookies on the same path they were set on.
func (a *API) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", a.Auth.SecureCookies, true)
	c.SetCookie("refresh_token", "", -1, "/", "", a.Auth.SecureCookies, true)
}
