package locks

import (
	"errors"
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

func (c *Controller) AcquireLock(ctx *gin.Context) {
	var req AcquireLockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid lock request", nil, err.Error())
		return
	}

	lock, err := c.service.AcquireLock(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyLocked) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is temporarily locked by another user", nil, err.Error())
			return
		}
		response.RespondError(ctx, err)
		return
	}

	grant := LockGrant{LockID: lock.LockID, ExpiresAt: lock.ExpiresAt}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Lock acquired successfully", grant, nil)
}

func (c *Controller) ExtendLock(ctx *gin.Context) {
	var req ExtendLockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid lock request", nil, err.Error())
		return
	}

	expiresAt, err := c.service.ExtendLock(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidLock) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Lock is invalid or expired", nil, err.Error())
			return
		}
		response.RespondError(ctx, err)
		return
	}

	grant := LockGrant{LockID: req.LockID, ExpiresAt: expiresAt}
	response.RespondJSON(ctx, "success", http.StatusOK, "Lock extended successfully", grant, nil)
}

func (c *Controller) ReleaseLock(ctx *gin.Context) {
	seatID, userID, lockID, ok := c.bindLockParams(ctx)
	if !ok {
		return
	}

	err := c.service.ReleaseLock(ctx.Request.Context(), seatID, userID, lockID)
	if err != nil {
		if errors.Is(err, ErrNotOwned) {
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Lock is not owned by this user", nil, err.Error())
			return
		}
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Lock released successfully", nil, nil)
}

func (c *Controller) ValidateLock(ctx *gin.Context) {
	seatID, userID, lockID, ok := c.bindLockParams(ctx)
	if !ok {
		return
	}

	err := c.service.ValidateLock(ctx.Request.Context(), seatID, userID, lockID)
	if err != nil {
		if errors.Is(err, ErrInvalidLock) {
			result := LockValidationResponse{Valid: false, Reason: err.Error()}
			response.RespondJSON(ctx, "success", http.StatusOK, "Lock validation completed", result, nil)
			return
		}
		response.RespondError(ctx, err)
		return
	}

	result := LockValidationResponse{Valid: true}
	response.RespondJSON(ctx, "success", http.StatusOK, "Lock validation completed", result, nil)
}

func (c *Controller) GetLockStatus(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("seatId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, err.Error())
		return
	}

	status := c.service.GetLockStatus(ctx.Request.Context(), seatID.String())
	response.RespondJSON(ctx, "success", http.StatusOK, "Lock status retrieved successfully", status, nil)
}

// bindLockParams pulls seat ID from the path and owner credentials from
// the query string; release and validate share this shape.
func (c *Controller) bindLockParams(ctx *gin.Context) (seatID, userID, lockID string, ok bool) {
	seat, err := uuid.Parse(ctx.Param("seatId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, err.Error())
		return "", "", "", false
	}

	user, err := uuid.Parse(ctx.Query("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Valid user_id query parameter is required", nil, err.Error())
		return "", "", "", false
	}

	lock, err := uuid.Parse(ctx.Query("lock_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Valid lock_id query parameter is required", nil, err.Error())
		return "", "", "", false
	}

	return seat.String(), user.String(), lock.String(), true
}
