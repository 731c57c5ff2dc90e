package schedule

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrWindowNotFound   = errors.New("schedule window not found")
	ErrEndBeforeStart   = errors.New("window end time must be after start time")
	ErrInvalidKind      = errors.New("window kind must be recurring or specific")
	ErrMissingDayOfWeek = errors.New("recurring window requires a day of week between 0 and 6")
	ErrMissingDate      = errors.New("specific window requires a calendar date")
	ErrInvalidWeek      = errors.New("week of month must be between 1 and 5")
	ErrMixedFields      = errors.New("recurring and specific window fields are mutually exclusive")
)

// Warning reports a malformed window that was skipped during a computation.
// One bad window never aborts the query for the remaining valid ones.
type Warning struct {
	WindowID uuid.UUID `json:"window_id"`
	Err      error     `json:"-"`
	Message  string    `json:"message"`
}

func warn(w *Window, err error) Warning {
	return Warning{WindowID: w.ID, Err: err, Message: err.Error()}
}
