package api

import (
	"net/http"
	"time"

	"trackside/training-api/model"
	"trackside/training-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type categoryBody struct {
	AttemptType string `json:"attempt_type" form:"attempt_type"`
	Place       string `json:"place" form:"place"`
	Date        string `json:"date" form:"date"`
	Rank        *uint  `json:"rank" form:"rank"`
}

// parse validates the body and turns it into a model row. Rank is only
// meaningful for competitions and gets dropped otherwise.
func (b *categoryBody) parse() (*model.AttemptCategory, error) {
	if err := validators.AttemptTypeValidator(b.AttemptType); err != nil {
		return nil, err
	}

	if b.Place == "" {
		return nil, validators.ErrPlaceEmpty
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return nil, err
	}

	rank := b.Rank
	if b.AttemptType != model.AttemptTypeCompetition || (rank != nil && *rank == 0) {
		rank = nil
	}

	return &model.AttemptCategory{
		AttemptType: b.AttemptType,
		Place:       b.Place,
		Date:        date,
		Rank:        rank,
	}, nil
}

func (a *API) CategoryCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data categoryBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	category, err := data.parse()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := a.DB.Create(category).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, category)
}
