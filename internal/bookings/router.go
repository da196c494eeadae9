package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Booking routes
	bookings := rg.Group("/bookings")
	{
		// Core booking operations
		bookings.POST("", controller.CreateBooking)             // POST /api/v1/bookings
		bookings.POST("/:id/confirm", controller.ConfirmBooking) // POST /api/v1/bookings/:id/confirm
		bookings.POST("/:id/cancel", controller.CancelBooking)  // POST /api/v1/bookings/:id/cancel
		bookings.GET("/:id", controller.GetBooking)             // GET  /api/v1/bookings/:id
	}

	// User-specific booking routes
	users := rg.Group("/users")
	{
		users.GET("/:userId/bookings", controller.GetUserBookings) // GET /api/v1/users/:userId/bookings
	}
}

// Key flow after seat locking:
// 1. User locks seats with POST /locks/acquire (one lock per seat)
// 2. User commits the locked seats with POST /bookings
// 3. System re-validates locks, charges inventory, creates a PENDING booking
// 4. Seats are marked BOOKED, registry locks are released
// 5. Payment settles and POST /bookings/:id/confirm moves it to CONFIRMED
// 6. POST /bookings/:id/cancel releases seats and restores inventory
