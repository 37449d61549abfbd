package deeplink

import (
	"go-timely/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rps float64, burst int, auth ...gin.HandlerFunc) {
	links := r.Group("/deeplinks")
	links.Use(auth...)
	links.Use(middleware.RateLimitByIP(rate.Limit(rps), burst))
	{
		links.POST("/initial", h.Initial)
		links.POST("/open", h.Open)
		links.POST("/notification-tap", h.NotificationTap)
		links.POST("/quick-action", h.QuickAction)
	}
}
