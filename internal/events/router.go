package events

import (
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can view events (for browsing)
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents) // GET /api/v1/events - Browse all events
		publicEvents.GET("/:id", controller.GetEvent) // GET /api/v1/events/:id - Get event details
	}
}
