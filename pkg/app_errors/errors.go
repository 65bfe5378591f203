package apperrors

import "errors"

var (
	ErrMissingToken          = errors.New("missing or malformed authorization header")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrForbidden             = errors.New("operation not permitted")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrInsufficientInventory = errors.New("insufficient ticket quantity")
	ErrAdSlotsFull           = errors.New("advertisement slots are full")
	ErrDuplicatePayment      = errors.New("payment already recorded for this transaction")
	ErrInternalServerError   = errors.New("internal server error")
)
