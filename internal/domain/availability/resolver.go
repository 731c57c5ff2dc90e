// Package availability classifies generated slots against the bookings of a
// single service day. Everything here is a pure function of its inputs: the
// same slots and bookings always produce the same classification, with no
// dependence on fetch order and no hidden state. Callers re-fetch a fresh
// snapshot per query; enforcing slot uniqueness at write time is the
// store's job (see the partial unique index on confirmed bookings).
package availability

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
)

// Slot is one bookable unit of a service day. Derived fresh on every query,
// never persisted.
type Slot struct {
	Start     schedule.TimeOfDay `json:"start"`
	Available bool               `json:"available"`
	Booking   *booking.Booking   `json:"booking,omitempty"`
}

// DayAvailability is the full classification of one service day.
type DayAvailability struct {
	// Slots, ascending by start time. A slot is occupied by at most one
	// confirmed booking whose wall-clock minute equals the slot start.
	Slots []Slot `json:"slots"`

	// Waitlist holds the day's waitlisted bookings. Their stored times are
	// advisory; they never occupy a slot.
	Waitlist []*booking.Booking `json:"waitlist"`

	// Unmatched holds confirmed bookings whose time matches no generated
	// slot, e.g. booked under a window that was later removed. They are
	// informational, attached to the day rather than to a slot, and must
	// not silently disappear.
	Unmatched []*booking.Booking `json:"unmatched"`
}

// SlotAt returns the slot starting at t, or nil if none was generated.
func (d *DayAvailability) SlotAt(t schedule.TimeOfDay) *Slot {
	for i := range d.Slots {
		if d.Slots[i].Start == t {
			return &d.Slots[i]
		}
	}
	return nil
}

// Resolve matches the generated slot starts against the day's bookings.
// excludeID, when non-nil, removes that booking from consideration before
// matching: a confirmed booking being rescheduled must not conflict with
// the slot it currently holds.
func Resolve(starts []schedule.TimeOfDay, bookings []*booking.Booking, excludeID *uuid.UUID) DayAvailability {
	// Work on a sorted copy so the classification is independent of the
	// order the store returned rows in.
	sorted := make([]*booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Status == booking.StatusCancelled {
			continue
		}
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].ScheduledAt.Equal(sorted[j].ScheduledAt) {
			return sorted[i].ScheduledAt.Before(sorted[j].ScheduledAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	day := DayAvailability{Slots: make([]Slot, len(starts))}
	occupant := make(map[schedule.TimeOfDay]*booking.Booking, len(starts))
	generated := make(map[schedule.TimeOfDay]struct{}, len(starts))
	for i, start := range starts {
		day.Slots[i] = Slot{Start: start, Available: true}
		generated[start] = struct{}{}
	}

	for _, b := range sorted {
		if b.Status == booking.StatusWaitlisted {
			day.Waitlist = append(day.Waitlist, b)
			continue
		}

		t := b.SlotTime()
		_, hasSlot := generated[t]
		if !hasSlot || occupant[t] != nil {
			// No generated slot at this time, or a prior booking already
			// took it. Either way the booking stays visible for the day.
			day.Unmatched = append(day.Unmatched, b)
			continue
		}
		occupant[t] = b
	}

	for i := range day.Slots {
		if b := occupant[day.Slots[i].Start]; b != nil {
			day.Slots[i].Available = false
			day.Slots[i].Booking = b
		}
	}

	return day
}
