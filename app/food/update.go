package food

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/model"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/pkg/validators"
	"go.uber.org/zap"
)

func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "invalid_id",
			"requestID": requestID,
		})
		return
	}

	var data foodBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	if data.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	if err := validators.FoodTypeValidator(data.Type); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "invalid_type",
			"requestID": requestID,
		})
		return
	}

	food := model.Food{
		ID:          id,
		Name:        data.Name,
		Description: data.Description,
		Calories:    data.Calories,
		Type:        data.Type,
	}

	if err := d.Foods.Update(c.Request.Context(), &food); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "not_found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update food", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, food)
}
