package middleware

import (
	"go-timely/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger copies the validated user and device IDs into the request
// context and attaches a logger carrying them. It runs after RequestID and
// the auth chain.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if contextutil.GetRequestID(ctx) == "" {
			ctx = contextutil.WithRequestID(ctx, c.GetString("request_id"))
		}
		ctx = contextutil.WithUserID(ctx, c.GetString("user_id_validated"))
		ctx = contextutil.WithDeviceID(ctx, c.GetString("device_id"))
		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.Fields(ctx)...))

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
