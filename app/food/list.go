// Package food contains the food catalog endpoints
package food

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/pkg/validators"
	"go.uber.org/zap"
)

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	query := strings.TrimSpace(c.Query("q"))

	// Unknown type filters are ignored rather than rejected, same as a
	// missing filter
	foodType := strings.TrimSpace(c.Query("type"))
	if !validators.KnownFoodType(foodType) {
		foodType = ""
	}

	foods, err := d.Foods.List(c.Request.Context(), query, foodType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list foods", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, foods)
}
