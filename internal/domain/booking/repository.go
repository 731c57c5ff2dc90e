package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new booking. The store's partial unique index on
	// confirmed (service_id, scheduled_at) may reject a booking that looked
	// free at classification time; Create returns ErrSlotOccupied in that
	// case so the caller can re-query and offer the waitlist instead.
	Create(ctx context.Context, b *Booking) error

	// GetByID retrieves a booking by primary key. Returns ErrBookingNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Save persists the full booking row after a reschedule or status change.
	// Maps the confirmed-slot uniqueness violation to ErrSlotOccupied.
	Save(ctx context.Context, b *Booking) error

	// ListForDay returns all non-cancelled bookings for a service on one
	// calendar day, ordered by scheduled time then id so availability
	// resolution is deterministic.
	ListForDay(ctx context.Context, serviceID uuid.UUID, day time.Time) ([]*Booking, error)

	// List returns a paginated, filtered list of bookings.
	List(ctx context.Context, q *ListBookingsQuery) (*PagedBookings, error)
}
