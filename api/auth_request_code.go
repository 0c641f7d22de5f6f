package api

import (
	"errors"
	"net/http"
	"strings"

	"trackside/training-api/model"
	"trackside/training-api/service"
	"trackside/training-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type requestCodeBody struct {
	Email string `json:"email" form:"email"`
	// Next is an optional continuation URL applied after a successful
	// login
	Next string `json:"next" form:"next"`
}

func (a *API) AuthRequestCode(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	sess := c.MustGet("session").(*model.Session)

	var data requestCodeBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	// Only same-site continuation targets are honored
	if data.Next != "" && strings.HasPrefix(data.Next, "/") && !strings.HasPrefix(data.Next, "//") {
		sess.Set(service.SessionKeyPostLoginRedirect, data.Next)
	}

	issueErr := a.OTP.Issue(sess, data.Email)

	// The pending handle is written even when the mail bounced, so a
	// retry doesn't create a second user record
	if err := a.Sessions.Save(sess); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if issueErr != nil {
		if errors.Is(issueErr, service.ErrMailDelivery) {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"error":     "Failed to send the code. Please try again",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue login code", zap.Error(issueErr), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, a.Auth.VerifyPath)
}
