package api

import (
	"net/http"

	"trackside/training-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryDelete removes a category together with its videos and
// their annotations.
func (a *API) CategoryDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	id := c.Param("id")

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		var category model.AttemptCategory

		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return err
		}

		err := tx.
			Where("video_id IN (?)", tx.Model(model.AttemptVideo{}).Select("id").Where("category_id = ?", category.ID)).
			Delete(model.VideoAnnotation{}).
			Error
		if err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", category.ID).Delete(model.AttemptVideo{}).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
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

		zap.L().Error("Failed to delete category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
