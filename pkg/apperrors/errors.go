package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable reason codes for booking operations. Clients match on these
// strings, so they must never change.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidLocks      = "INVALID_LOCKS"
	CodeEventNotFound     = "EVENT_NOT_FOUND"
	CodeSalesClosed       = "SALES_CLOSED"
	CodeSeatsNotFound     = "SEATS_NOT_FOUND"
	CodeSeatsNotAvailable = "SEATS_NOT_AVAILABLE"
	CodeBookingNotFound   = "BOOKING_NOT_FOUND"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeAlreadyCancelled  = "ALREADY_CANCELLED"
	CodeSystemError       = "SYSTEM_ERROR"
)

// Reason codes for lock registry operations.
const (
	CodeAlreadyLocked = "ALREADY_LOCKED"
	CodeInvalidLock   = "INVALID_LOCK"
	CodeNotOwned      = "NOT_OWNED"
	CodeLockNotFound  = "LOCK_NOT_FOUND"
)

// Error is a domain error with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors that carry the same code, so callers can compare
// against sentinel instances with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewInvalidRequest flags a structurally invalid request.
func NewInvalidRequest(message string) *Error {
	return New(CodeInvalidRequest, message)
}

// NewInvalidLocks flags missing, expired, or foreign seat locks.
func NewInvalidLocks(message string) *Error {
	return New(CodeInvalidLocks, message)
}

// NewEventNotFound flags a reference to a nonexistent event.
func NewEventNotFound(eventID string) *Error {
	return New(CodeEventNotFound, fmt.Sprintf("event %s not found", eventID))
}

// NewSalesClosed flags an event that cannot sell tickets right now.
func NewSalesClosed(eventID string) *Error {
	return New(CodeSalesClosed, fmt.Sprintf("ticket sales are closed for event %s", eventID))
}

// NewSeatsNotFound flags requested seats that do not exist.
func NewSeatsNotFound(message string) *Error {
	return New(CodeSeatsNotFound, message)
}

// NewSeatsNotAvailable flags seats that exist but are not purchasable.
func NewSeatsNotAvailable(message string) *Error {
	return New(CodeSeatsNotAvailable, message)
}

// NewBookingNotFound flags a reference to a nonexistent booking.
func NewBookingNotFound(bookingID string) *Error {
	return New(CodeBookingNotFound, fmt.Sprintf("booking %s not found", bookingID))
}

// NewInvalidStatus flags a state transition the booking lifecycle forbids.
func NewInvalidStatus(message string) *Error {
	return New(CodeInvalidStatus, message)
}

// NewAlreadyCancelled flags a repeat cancellation.
func NewAlreadyCancelled(bookingID string) *Error {
	return New(CodeAlreadyCancelled, fmt.Sprintf("booking %s is already cancelled", bookingID))
}

// NewSystemError wraps an unexpected infrastructure failure.
func NewSystemError(message string, err error) *Error {
	return Wrap(CodeSystemError, message, err)
}

// CodeOf extracts the stable code from err, or SYSTEM_ERROR when err is
// not a domain error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeSystemError
}

// HTTPStatus maps a reason code to the HTTP status the API responds with.
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeEventNotFound, CodeSeatsNotFound, CodeBookingNotFound, CodeLockNotFound:
		return http.StatusNotFound
	case CodeInvalidLocks, CodeSalesClosed, CodeSeatsNotAvailable,
		CodeAlreadyCancelled, CodeAlreadyLocked, CodeInvalidStatus:
		return http.StatusConflict
	case CodeInvalidLock, CodeNotOwned:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
