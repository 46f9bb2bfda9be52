// Package root contains endpoints that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
)

func Health(c *gin.Context, d *internal.Deps) {
	var one int
	err := d.DB.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error

	if err != nil || one != 1 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok": false,
			"db": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"db": "up",
	})
}
