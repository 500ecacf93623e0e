package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidDates    = errors.New("checkin and checkout are required")
)
