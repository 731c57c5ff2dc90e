package schedule

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, w *Window) error

	// GetByID retrieves a window by primary key. Returns ErrWindowNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Window, error)

	// ListByService returns every window configured for a service, ordered by
	// creation time. Malformed rows are returned as-is; callers validate.
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*Window, error)

	// Save persists the full window row after an edit.
	Save(ctx context.Context, w *Window) error

	// SoftDelete marks the window as deleted; existing bookings keep their times.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
