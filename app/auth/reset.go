package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/pkg/security"
	"github.com/keylian15/le-garde-manger/pkg/validators"
	"go.uber.org/zap"
)

type resetBody struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func Reset(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resetBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	if data.Token == "" || data.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "weak_password",
			"requestID": requestID,
		})
		return
	}

	record, err := d.Users.FindResetTokenByHash(c.Request.Context(), security.HashResetToken(data.Token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "invalid_or_expired_token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if time.Now().After(record.ExpiresAt) {
		// Same answer as an unknown token, but the dead row gets cleaned up
		if err := d.Users.DeleteResetToken(c.Request.Context(), record.TokenID); err != nil {
			zap.L().Error("Failed to delete expired reset token", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "invalid_or_expired_token",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Hasher.Hash(data.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash new password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Users.UpdatePassword(c.Request.Context(), record.UserID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Single use: the token dies with the reset that consumed it
	if err := d.Users.DeleteResetToken(c.Request.Context(), record.TokenID); err != nil {
		zap.L().Error("Failed to delete consumed reset token", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Mot de passe réinitialisé.",
	})
}
