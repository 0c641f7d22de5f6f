package api

import (
	"net/http"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoList returns every video, attempts of the freshest categories
// first. Used by the annotations overview.
func (a *API) VideoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var videos []model.AttemptVideo

	err := a.DB.
		Joins("JOIN attempt_categories ON attempt_categories.id = attempt_videos.category_id").
		Order("attempt_categories.date DESC, attempt_videos.event_type ASC, attempt_videos.attempt_number ASC").
		Find(&videos).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, videos)
}
