package api

import (
	"errors"
	"net/http"

	"trackside/training-api/model"
	"trackside/training-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type videoBody struct {
	CategoryID      uint    `json:"category_id" form:"category_id"`
	EventType       string  `json:"event_type" form:"event_type"`
	SourceURL       string  `json:"source_url" form:"source_url"`
	Result          string  `json:"result" form:"result"`
	AttemptNumber   uint    `json:"attempt_number" form:"attempt_number"`
	PlaceInProtocol *uint   `json:"place_in_protocol" form:"place_in_protocol"`
	AttemptTime     *string `json:"time" form:"time"`
}

func (b *videoBody) validate() error {
	if err := validators.EventTypeValidator(b.EventType); err != nil {
		return err
	}

	if b.SourceURL == "" {
		return errors.New("no source_url provided")
	}

	if b.Result == "" {
		return validators.ErrResultEmpty
	}

	if b.AttemptNumber < 1 {
		return validators.ErrAttemptNumberZero
	}

	return nil
}

func (a *API) VideoCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

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

	var category model.AttemptCategory

	err := a.DB.Where("id = ?", data.CategoryID).First(&category).Error
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

	// A protocol place only exists in competitions
	if category.AttemptType != model.AttemptTypeCompetition {
		data.PlaceInProtocol = nil
	}

	video := model.AttemptVideo{
		CategoryID:      category.ID,
		EventType:       data.EventType,
		SourceURL:       data.SourceURL,
		Result:          data.Result,
		AttemptNumber:   data.AttemptNumber,
		PlaceInProtocol: data.PlaceInProtocol,
		AttemptTime:     data.AttemptTime,
	}

	if err := a.DB.Create(&video).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, video)
}
