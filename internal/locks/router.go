package locks

import (
	"github.com/gin-gonic/gin"
)

func SetupLockRoutes(rg *gin.RouterGroup, controller *Controller) {

	// SEAT LOCK OPERATIONS (booking flow)

	locks := rg.Group("/locks")
	{
		locks.POST("/acquire", controller.AcquireLock)          // POST   /api/v1/locks/acquire
		locks.PUT("/extend", controller.ExtendLock)             // PUT    /api/v1/locks/extend
		locks.DELETE("/:seatId", controller.ReleaseLock)        // DELETE /api/v1/locks/:seatId?user_id=xxx&lock_id=xxx
		locks.GET("/:seatId", controller.GetLockStatus)         // GET    /api/v1/locks/:seatId
		locks.GET("/:seatId/validate", controller.ValidateLock) // GET    /api/v1/locks/:seatId/validate?user_id=xxx&lock_id=xxx
	}
}
