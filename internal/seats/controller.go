package seats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soumith2105/atomic-ticket-booking/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetSeat(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, err.Error())
		return
	}

	seat, err := c.service.GetSeatByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}

func (c *Controller) GetAvailability(ctx *gin.Context) {
	// Event ID comes as a query parameter - availability is event-scoped
	eventID, err := uuid.Parse(ctx.Query("event_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Valid event_id query parameter is required", nil, err.Error())
		return
	}

	availability, err := c.service.GetAvailabilityForEvent(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Available seats retrieved successfully", availability, nil)
}
