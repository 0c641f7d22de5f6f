package api

import (
	"net/http"
	"slices"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var videoOrderMap = map[string]string{
	"attempt_asc":  "attempt_number ASC, id ASC",
	"attempt_desc": "attempt_number DESC, id DESC",
	"time_asc":     "attempt_time ASC, id ASC",
	"time_desc":    "attempt_time DESC, id DESC",
	"created_desc": "id DESC",
	"created_asc":  "id ASC",
}

// resultOrder resolves the result_best/result_worst sorts. For runs a
// lower result wins, for jumps and throws a higher one does. Without
// an event filter results mix units, so sorting by them is refused and
// the caller gets the default order back.
func resultOrder(sort, filterEvent string) (order string, disabled bool) {
	if filterEvent == "" {
		return videoOrderMap["attempt_asc"], true
	}

	best := sort == "result_best"

	if filterEvent == model.EventTypeRun {
		if best {
			return "result ASC, id ASC", false
		}
		return "result DESC, id DESC", false
	}

	if best {
		return "result DESC, id DESC", false
	}
	return "result ASC, id ASC", false
}

func (a *API) CategoryDetail(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var category model.AttemptCategory

	err := a.DB.Where("id = ?", c.Param("id")).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Category not found",
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

	filterEvent := c.Query("event")
	if !slices.Contains(model.EventTypes, filterEvent) {
		filterEvent = ""
	}

	sort := c.DefaultQuery("sort", "attempt_asc")

	var order string
	resultSortDisabled := false

	if sort == "result_best" || sort == "result_worst" {
		order, resultSortDisabled = resultOrder(sort, filterEvent)
	} else {
		var ok bool
		if order, ok = videoOrderMap[sort]; !ok {
			order = videoOrderMap["attempt_asc"]
		}
	}

	q := a.DB.Where("category_id = ?", category.ID)
	if filterEvent != "" {
		q = q.Where("event_type = ?", filterEvent)
	}

	var videos []model.AttemptVideo

	if err := q.Order(order).Find(&videos).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load category videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":             category,
		"videos":               videos,
		"result_sort_disabled": resultSortDisabled,
	})
}
