package middleware

import (
	"strings"

	"go-timely/internal/shared/apperror"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID promotes the user_id claim set by AuthMiddleware to
// user_id_validated, the key rate limiting and ContextLogger read.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetString("user_id"))
		if userID == "" {
			response.Abort(c, apperror.ErrUnauthorized)
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
