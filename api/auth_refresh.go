package api

import (
	"errors"
	"net/http"

	"trackside/training-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) AuthRefresh(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	tokenStr, err := c.Cookie("refresh_token")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "No refresh_token cookie",
			"requestID": requestID,
		})
		return
	}

	pair, err := a.Tokens.Refresh(tokenStr)
	if err != nil {
		if errors.Is(err, service.ErrTokenRevoked) {
			// Replay of a rotated token. Fail closed and force a full
			// re-login
			a.clearTokenCookies(c)

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_revoked",
				"requestID": requestID,
			})

			zap.L().Warn("Refresh attempted with a revoked token", zap.String("requestID", requestID))
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "token_invalid",
			"requestID": requestID,
		})
		return
	}

	a.setTokenCookies(c, pair)

	c.JSON(http.StatusOK, gin.H{
		"userID": pair.UserID,
	})
}
