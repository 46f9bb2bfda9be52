package food

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/model"
	"github.com/keylian15/le-garde-manger/pkg/validators"
	"go.uber.org/zap"
)

type foodBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Type        string `json:"type"`
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

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
		Name:        data.Name,
		Description: data.Description,
		Calories:    data.Calories,
		Type:        data.Type,
	}

	if err := d.Foods.Create(c.Request.Context(), &food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create food", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, food)
}
