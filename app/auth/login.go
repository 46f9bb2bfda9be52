package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
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

	user, err := d.Users.FindUserByEmail(c.Request.Context(), data.Email)
	if err != nil {
		// Unknown email answers exactly like a wrong password so the
		// endpoint can't be used to enumerate accounts
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "invalid_credentials",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !d.Hasher.Verify(data.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "invalid_credentials",
			"requestID": requestID,
		})
		return
	}

	token, err := d.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
		"token": token,
	})
}
