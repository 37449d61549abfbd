package triggerlog

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth ...gin.HandlerFunc) {
	triggers := r.Group("/triggers")
	triggers.Use(auth...)
	{
		triggers.GET("", h.List)
	}
}
