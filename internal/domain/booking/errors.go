package booking

import "errors"

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrSlotOccupied            = errors.New("slot occupied")
	ErrOutsideServiceHours     = errors.New("requested time is outside service hours")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrMissingClient           = errors.New("booking requires a client name")
	ErrServiceMismatch         = errors.New("service does not belong to the requested pharmacy")
	ErrNotWaitlisted           = errors.New("only waitlisted bookings can be promoted")
)
