package middleware

import (
	"net/http"

	"trackside/training-api/model"
	"trackside/training-api/security"
	"trackside/training-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewAuthMiddleware guards the private endpoints. A request passes if
// it carries either an authenticated server-side session or a valid
// access_token cookie. Whatever identity wins is checked against the
// user table so credentials of a removed account stop working.
func NewAuthMiddleware(d *gorm.DB, maker *security.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		userID := sessionUserID(c)
		if userID == "" {
			userID = tokenUserID(c, maker)
		}

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "authentication_required",
				"requestID": requestID,
			})
			return
		}

		var user model.User

		err := d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "user_not_found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func sessionUserID(c *gin.Context) string {
	v, ok := c.Get("session")
	if !ok {
		return ""
	}

	sess, ok := v.(*model.Session)
	if !ok {
		return ""
	}

	id, _ := sess.Get(service.SessionKeyUserID)
	return id
}

func tokenUserID(c *gin.Context, maker *security.TokenMaker) string {
	tokenStr, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}

	claims, err := maker.Parse(tokenStr, security.TokenTypeAccess)
	if err != nil {
		return ""
	}

	return claims.UserID
}
