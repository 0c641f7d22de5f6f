package api

import (
	"net/http"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) AnnotationFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var video model.AttemptVideo

	err := a.DB.Where("id = ?", c.Param("id")).First(&video).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var ann model.VideoAnnotation

	err = a.DB.Where("video_id = ?", video.ID).First(&ann).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{"shapes": []interface{}{}})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load annotation", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shapes": ann.Shapes})
}
