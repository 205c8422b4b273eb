package planning

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	days := r.Group("/planning-days")
	{
		days.GET("/:id", h.GetDay)
		days.POST("/:id/recompute", h.RecomputeDay)
	}

	schedules := r.Group("/schedules")
	{
		schedules.GET("/:id/days", h.GetScheduleDays)
	}
}
