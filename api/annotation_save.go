package api

import (
	"encoding/json"
	"net/http"
	"time"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type annotationBody struct {
	Shapes json.RawMessage `json:"shapes"`
}

func (a *API) AnnotationSave(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

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

	var data annotationBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	// Shapes stay opaque but must at least be a JSON array
	var probe []json.RawMessage
	if err := json.Unmarshal(data.Shapes, &probe); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "shapes must be a list",
			"requestID": requestID,
		})
		return
	}

	ann := model.VideoAnnotation{
		VideoID:   video.ID,
		Shapes:    model.Shapes(data.Shapes),
		UpdatedBy: &userID,
		UpdatedAt: time.Now(),
	}

	err = a.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shapes", "updated_by", "updated_at"}),
		}).
		Create(&ann).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save annotation", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"updated_at": ann.UpdatedAt,
	})
}
