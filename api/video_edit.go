package api

import (
	"net/http"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) VideoEdit(c *gin.Context) {
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

	var data videoBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := data.validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.CategoryID == 0 {
		data.CategoryID = video.CategoryID
	}

	var category model.AttemptCategory

	err = a.DB.Where("id = ?", data.CategoryID).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Unknown category",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if category.AttemptType != model.AttemptTypeCompetition {
		data.PlaceInProtocol = nil
	}

	video.CategoryID = category.ID
	video.EventType = data.EventType
	video.SourceURL = data.SourceURL
	video.Result = data.Result
	video.AttemptNumber = data.AttemptNumber
	video.PlaceInProtocol = data.PlaceInProtocol
	video.AttemptTime = data.AttemptTime

	if err := a.DB.Save(&video).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, video)
}
