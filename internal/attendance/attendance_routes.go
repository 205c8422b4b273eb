package attendance

import (
	"go-vigilancia/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	attendance := r.Group("/attendance")
	{
		if redisClient != nil {
			attendance.POST(
				"/import",
				middleware.RateLimitByIP(0.5, 3),
				middleware.Idempotency(redisClient),
				h.Import,
			)
		} else {
			attendance.POST("/import", middleware.RateLimitByIP(0.5, 3), h.Import)
		}
	}
}
