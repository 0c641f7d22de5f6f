package api

import (
	"net/http"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) VideoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	id := c.Param("id")

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		var video model.AttemptVideo

		if err := tx.Where("id = ?", id).First(&video).Error; err != nil {
			return err
		}

		if err := tx.Where("video_id = ?", video.ID).Delete(model.VideoAnnotation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&video).Error
	})
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

		zap.L().Error("Failed to delete video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
