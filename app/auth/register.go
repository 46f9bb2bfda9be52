// Package auth contains the registration, login and password reset endpoints
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"go.uber.org/zap"
)

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	if data.Email == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Hasher.Hash(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	_, err = d.Users.CreateUser(c.Request.Context(), data.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "email_taken",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// No token here, the user logs in separately
	c.JSON(http.StatusCreated, gin.H{
		"ok": true,
	})
}
