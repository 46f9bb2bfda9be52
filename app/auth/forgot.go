package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/pkg/security"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

const forgotMessage = "Si un compte existe avec cet email, un lien de réinitialisation a été envoyé."

type forgotBody struct {
	Email string `json:"email"`
}

// Forgot always answers with the same success shape. Whether the email
// is registered only decides if a token gets stored and a mail goes out.
func Forgot(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing_fields",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.FindUserByEmail(c.Request.Context(), data.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"message": forgotMessage,
		})
		return
	}

	plaintext, hash, err := security.NewResetToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// One live token per user: drop whatever came before
	if err := d.Users.DeleteResetTokensForUser(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete prior reset tokens", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := d.Users.InsertResetToken(c.Request.Context(), user.ID, hash, expiresAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	resetURL := fmt.Sprintf("%v/reset-password/%v",
		viper.GetString("host.frontend_origin"), plaintext)

	// Deliverability must stay invisible to the caller, log and move on
	if err := d.Mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		zap.L().Error("Failed to send reset mail", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": forgotMessage,
	})
}
