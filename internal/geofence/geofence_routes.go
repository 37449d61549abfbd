package geofence

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth ...gin.HandlerFunc) {
	geo := r.Group("/geofence")
	geo.Use(auth...)
	{
		geo.GET("/status", h.Status)
		geo.POST("/start", h.Start)
		geo.POST("/stop", h.Stop)
		geo.PUT("/radius", h.UpdateRadius)
		geo.POST("/permission", h.Permission)
		geo.POST("/events", h.Event)
	}
}
