package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/internal/service"
	"go.uber.org/zap"
)

// NewAuthMiddleware guards protected routes. Accepts either
// "Authorization: Bearer <session token>" or
// "Authorization: Basic base64(email:password)".
//
// Unknown-user and wrong-password rejections share one response body so
// a client can't probe which emails are registered.
func NewAuthMiddleware(d *internal.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")

		switch {
		case strings.HasPrefix(header, "Bearer "):
			bearerAuth(c, d, strings.TrimPrefix(header, "Bearer "), requestID)
		case strings.HasPrefix(header, "Basic "):
			basicAuth(c, d, strings.TrimPrefix(header, "Basic "), requestID)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "auth_required",
				"requestID": requestID,
			})
		}
	}
}

func bearerAuth(c *gin.Context, d *internal.Deps, tokenString, requestID string) {
	claims, err := d.Tokens.Verify(tokenString)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_expired",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "invalid_token",
			"requestID": requestID,
		})
		return
	}

	c.Set("userID", claims.UserID)
	c.Next()
}

func basicAuth(c *gin.Context, d *internal.Deps, payload, requestID string) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "invalid_auth_header",
			"requestID": requestID,
		})
		return
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "invalid_auth_header",
			"requestID": requestID,
		})
		return
	}

	if email == "" || password == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "invalid_credentials",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "invalid_credentials",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user for basic auth", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !d.Hasher.Verify(password, user.PasswordHash) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "invalid_credentials",
			"requestID": requestID,
		})
		return
	}

	c.Set("userID", user.ID)
	c.Set("userEmail", user.Email)
	c.Next()
}
