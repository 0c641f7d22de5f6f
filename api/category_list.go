package api

import (
	"net/http"
	"strconv"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const categoryPageSize = 12

// Maps the public sort keys onto SQL order clauses. videos_count is an
// alias computed by the listing query.
var categoryOrderMap = map[string]string{
	"date_desc":   "date DESC, place ASC",
	"date_asc":    "date ASC, place ASC",
	"place_asc":   "place ASC, date DESC",
	"place_desc":  "place DESC, date DESC",
	"type_asc":    "attempt_type ASC, date DESC",
	"type_desc":   "attempt_type DESC, date DESC",
	"videos_desc": "videos_count DESC, date DESC",
	"videos_asc":  "videos_count ASC, date DESC",
}

func (a *API) CategoryList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	filterType := c.Query("attempt_type")
	sort := c.DefaultQuery("sort", "date_desc")

	order, ok := categoryOrderMap[sort]
	if !ok {
		order = categoryOrderMap["date_desc"]
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid page provided",
			"requestID": requestID,
		})
		return
	}

	base := func() *gorm.DB {
		q := a.DB.Model(model.AttemptCategory{})

		// Unknown filter values fall back to an unfiltered listing
		if filterType == model.AttemptTypeTraining || filterType == model.AttemptTypeCompetition {
			q = q.Where("attempt_type = ?", filterType)
		}

		return q
	}

	var total int64

	if err := base().Count(&total).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count categories", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var categories []model.AttemptCategory

	err = base().
		Select("attempt_categories.*, (SELECT COUNT(*) FROM attempt_videos WHERE attempt_videos.category_id = attempt_categories.id) AS videos_count").
		Order(order).
		Offset(page * categoryPageSize).
		Limit(categoryPageSize).
		Find(&categories).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list categories", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"page":       page,
		"page_size":  categoryPageSize,
		"total":      total,
	})
}
