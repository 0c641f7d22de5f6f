package middleware

import (
	"net/http"

	"trackside/training-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const SessionCookie = "session_id"

// NewSessionMiddleware loads the caller's server-side session, creating
// a fresh one when the cookie is missing or stale, and exposes it on
// the context as "session".
func NewSessionMiddleware(sessions *service.Sessions, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil && err != http.ErrNoCookie {
			token = ""
		}

		sess, err := sessions.Get(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})

			zap.L().Error("Failed to load session", zap.Error(err))
			return
		}

		if sess == nil {
			sess, err = sessions.Create()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})

				zap.L().Error("Failed to create session", zap.Error(err))
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.Token, int(sessions.Lifetime().Seconds()), "/", "", secure, true)
		}

		c.Set("session", sess)
		c.Next()
	}
}
