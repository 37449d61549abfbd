package timeclock

import (
	"go-timely/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the manual clock endpoints behind auth, the chain
// that authenticates and scopes the request.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb redis.Cmdable, auth ...gin.HandlerFunc) {
	clock := r.Group("/clock")
	clock.Use(auth...)
	{
		clock.POST("", middleware.RateLimitByUser(rate.Limit(2), 4), middleware.Idempotency(rdb), h.ClockNow)
		clock.GET("/status", h.Status)
		clock.GET("/last-event", h.LastEvent)
		clock.POST("/events/:id/confirm", h.Confirm)
		clock.PUT("/events/:id", h.Update)
		clock.DELETE("/events/:id", h.Delete)
	}
}
