package api

import (
	"net/http"

	"trackside/training-api/middleware"
	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthLogout terminates the server-side session, blacklists the
// current refresh token and deletes every auth cookie. It never fails,
// even when nothing was there to clear.
func (a *API) AuthLogout(c *gin.Context) {
	sess := c.MustGet("session").(*model.Session)

	if err := a.Sessions.Destroy(sess.Token); err != nil {
		zap.L().Error("Failed to destroy session", zap.Error(err))
	}

	if refresh, err := c.Cookie("refresh_token"); err == nil {
		if err := a.Tokens.Revoke(refresh); err != nil {
			zap.L().Error("Failed to blacklist refresh token", zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", a.Auth.SecureCookies, true)
	a.clearTokenCookies(c)

	c.Redirect(http.StatusSeeOther, a.Auth.LoginPath)
}
