package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/soumith2105/atomic-ticket-booking/pkg/apperrors"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a domain error to its HTTP status and stable reason code.
// Unknown errors degrade to SYSTEM_ERROR without leaking internals.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewSystemError("internal server error", err)
	}

	status := apperrors.HTTPStatus(appErr.Code)
	c.JSON(status, StandardApiResponse{
		Status:     "error",
		StatusCode: status,
		Code:       appErr.Code,
		Message:    appErr.Message,
	})
}
