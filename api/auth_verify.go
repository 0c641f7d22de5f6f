package api

import (
	"errors"
	"net/http"

	"trackside/training-api/middleware"
	"trackside/training-api/model"
	"trackside/training-api/service"
	"trackside/training-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyBody struct {
	Code string `json:"code" form:"code"`
}

func (a *API) AuthVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	sess := c.MustGet("session").(*model.Session)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.CodeValidator(data.Code, a.Auth.OTPCodeLength); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := a.OTP.Verify(sess, data.Code)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingVerification) {
			c.Redirect(http.StatusSeeOther, a.Auth.LoginPath)
			return
		}

		if errors.Is(err, service.ErrInvalidOrExpiredCode) {
			// Wrong and expired intentionally look the same. The handle
			// stays so the user may try again
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired code",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify login code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sess.Set(service.SessionKeyUserID, user.ID)
	next, _ := sess.Pop(service.SessionKeyPostLoginRedirect)

	// Logging in upgrades the session, so it moves to a fresh token.
	// A token captured before authentication stays anonymous
	if err := a.Sessions.Rotate(sess); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to rotate session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.Token, int(a.Sessions.Lifetime().Seconds()), "/", "", a.Auth.SecureCookies, true)

	pair, err := a.Tokens.IssuePair(user.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue token pair", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.setTokenCookies(c, pair)

	if next == "" {
		next = a.Auth.LandingPath
	}

	c.Redirect(http.StatusSeeOther, next)
}
