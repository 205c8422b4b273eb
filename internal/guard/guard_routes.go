package guard

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	guards := r.Group("/guards")
	{
		guards.GET("", h.GetAll)
		guards.GET("/options", h.GetOptions)
		guards.POST("", h.Create)
		guards.DELETE("/:id", h.Delete)
	}
}
