package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlotStartsSingleWindow(t *testing.T) {
	w := NewRecurring(uuid.New(), time.Monday, nil, NewTimeOfDay(9, 0), NewTimeOfDay(11, 0))

	got := SlotStarts(30, []*Window{w})

	want := []TimeOfDay{
		NewTimeOfDay(9, 0),
		NewTimeOfDay(9, 30),
		NewTimeOfDay(10, 0),
		NewTimeOfDay(10, 30),
	}
	assert.Equal(t, want, got)
}

func TestSlotStartsDiscardsPartialRemainder(t *testing.T) {
	// 09:00-10:45 with 30-minute slots: the 15 minutes after 10:30 cannot
	// hold a full slot and must not become a shortened one.
	w := NewRecurring(uuid.New(), time.Monday, nil, NewTimeOfDay(9, 0), NewTimeOfDay(10, 45))

	got := SlotStarts(30, []*Window{w})

	want := []TimeOfDay{
		NewTimeOfDay(9, 0),
		NewTimeOfDay(9, 30),
		NewTimeOfDay(10, 0),
	}
	assert.Equal(t, want, got)
}

func TestSlotStartsWindowShorterThanDuration(t *testing.T) {
	w := NewRecurring(uuid.New(), time.Monday, nil, NewTimeOfDay(9, 0), NewTimeOfDay(9, 20))

	assert.Empty(t, SlotStarts(30, []*Window{w}))
}

func TestSlotStartsOverlappingWindowsDeduplicate(t *testing.T) {
	serviceID := uuid.New()
	// Listed out of order on purpose; the result must still be ascending.
	windows := []*Window{
		NewRecurring(serviceID, time.Monday, nil, NewTimeOfDay(10, 0), NewTimeOfDay(12, 0)),
		NewRecurring(serviceID, time.Monday, nil, NewTimeOfDay(9, 0), NewTimeOfDay(11, 0)),
	}

	got := SlotStarts(60, windows)

	want := []TimeOfDay{
		NewTimeOfDay(9, 0),
		NewTimeOfDay(10, 0),
		NewTimeOfDay(11, 0),
	}
	assert.Equal(t, want, got)
}

func TestSlotStartsInvalidDuration(t *testing.T) {
	w := NewRecurring(uuid.New(), time.Monday, nil, NewTimeOfDay(9, 0), NewTimeOfDay(11, 0))

	assert.Nil(t, SlotStarts(0, []*Window{w}))
	assert.Nil(t, SlotStarts(-15, []*Window{w}))
}
