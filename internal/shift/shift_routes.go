package shift

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	shifts := r.Group("/shifts")
	{
		shifts.POST("", h.Create)
		shifts.POST("/bulk", h.BulkCreate)
		shifts.POST("/duplicate", h.DuplicateDay)
		shifts.PUT("/:id", h.Update)
		shifts.DELETE("/:id", h.Delete)
	}
}
