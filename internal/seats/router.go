package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/seats")
	{
		// Availability checks (booking flow entry point)
		seats.GET("/available", controller.GetAvailability) // GET /api/v1/seats/available?event_id=xxx

		// Individual seat
		seats.GET("/:id", controller.GetSeat) // GET /api/v1/seats/:id
	}
}
