package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/availability"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
)

type bookingFixture struct {
	*availabilityFixture
	repo *mockBookingRepo
	sut  *BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	af := newAvailabilityFixture(t)
	f := &bookingFixture{availabilityFixture: af, repo: af.bookings}

	audit := newTestAuditService()
	t.Cleanup(audit.Shutdown)

	f.sut = NewBookingService(f.repo, af.sut, audit, nil, zap.NewNop())
	return f
}

func (f *bookingFixture) stubOpenMonday(existing ...*booking.Booking) {
	f.services.On("GetByID", mock.Anything, f.service.ID).Return(f.service, nil)
	f.windows.On("ListByService", mock.Anything, f.service.ID).Return(f.mondayMorning(), nil)
	f.repo.On("ListForDay", mock.Anything, f.service.ID, f.monday).Return(existing, nil)
}

func (f *bookingFixture) createCommand() *booking.CreateBookingCommand {
	return &booking.CreateBookingCommand{
		ServiceID:  f.service.ID,
		PharmacyID: f.service.PharmacyID,
		Day:        f.monday,
		StartTime:  schedule.NewTimeOfDay(9, 0),
		ClientName: "Alex Moreau",
		CreatedBy:  uuid.New(),
	}
}

func (f *bookingFixture) confirmedAt(hour, minute int) *booking.Booking {
	return &booking.Booking{
		ID:          uuid.New(),
		ServiceID:   f.service.ID,
		PharmacyID:  f.service.PharmacyID,
		ScheduledAt: time.Date(2024, 3, 11, hour, minute, 0, 0, time.UTC),
		Status:      booking.StatusConfirmed,
		ClientName:  "Sam Keller",
	}
}

func TestCreateBookingConfirmed(t *testing.T) {
	f := newBookingFixture(t)
	f.stubOpenMonday()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*booking.Booking")).Return(nil)

	b, outcome, err := f.sut.CreateBooking(context.Background(), f.createCommand(), uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, availability.DecisionConfirmed, outcome.Decision)
	assert.Equal(t, booking.StatusConfirmed, b.Status)
	assert.Equal(t, time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC), b.ScheduledAt)
}

func TestCreateBookingOccupiedWithoutOptInRejected(t *testing.T) {
	f := newBookingFixture(t)
	f.stubOpenMonday(f.confirmedAt(9, 0))

	b, outcome, err := f.sut.CreateBooking(context.Background(), f.createCommand(), uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Equal(t, availability.DecisionRejected, outcome.Decision)
	assert.Equal(t, "slot occupied", outcome.Reason)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingOccupiedWithOptInWaitlisted(t *testing.T) {
	f := newBookingFixture(t)
	f.stubOpenMonday(f.confirmedAt(9, 0))
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*booking.Booking")).Return(nil)

	cmd := f.createCommand()
	cmd.AllowWaitlist = true

	b, outcome, err := f.sut.CreateBooking(context.Background(), cmd, uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, availability.DecisionWaitlisted, outcome.Decision)
	assert.Equal(t, booking.StatusWaitlisted, b.Status)
}

func TestCreateBookingLosesSlotRace(t *testing.T) {
	f := newBookingFixture(t)
	f.stubOpenMonday()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*booking.Booking")).Return(booking.ErrSlotOccupied)

	b, _, err := f.sut.CreateBooking(context.Background(), f.createCommand(), uuid.New(), "pharmacist", "10.0.0.1")

	assert.Nil(t, b)
	assert.ErrorIs(t, err, booking.ErrSlotOccupied)
}

func TestRescheduleBookingOntoOwnSlotConfirms(t *testing.T) {
	f := newBookingFixture(t)
	existing := f.confirmedAt(9, 0)
	f.stubOpenMonday(existing)
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.repo.On("Save", mock.Anything, existing).Return(nil)

	cmd := &booking.RescheduleBookingCommand{
		Day:       f.monday,
		StartTime: schedule.NewTimeOfDay(9, 0),
		UpdatedBy: uuid.New(),
	}

	b, outcome, err := f.sut.RescheduleBooking(context.Background(), existing.ID, cmd, uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, availability.DecisionConfirmed, outcome.Decision)
	assert.Equal(t, booking.StatusConfirmed, b.Status)
}

func TestRescheduleBookingOntoOccupiedSlotRejected(t *testing.T) {
	f := newBookingFixture(t)
	moving := f.confirmedAt(10, 0)
	blocker := f.confirmedAt(9, 0)
	f.stubOpenMonday(moving, blocker)
	f.repo.On("GetByID", mock.Anything, moving.ID).Return(moving, nil)

	cmd := &booking.RescheduleBookingCommand{
		Day:       f.monday,
		StartTime: schedule.NewTimeOfDay(9, 0),
		UpdatedBy: uuid.New(),
	}

	b, outcome, err := f.sut.RescheduleBooking(context.Background(), moving.ID, cmd, uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Equal(t, availability.DecisionRejected, outcome.Decision)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRescheduleCancelledBooking(t *testing.T) {
	f := newBookingFixture(t)
	cancelled := f.confirmedAt(9, 0)
	cancelled.Status = booking.StatusCancelled
	f.repo.On("GetByID", mock.Anything, cancelled.ID).Return(cancelled, nil)

	cmd := &booking.RescheduleBookingCommand{Day: f.monday, StartTime: schedule.NewTimeOfDay(10, 0)}

	_, _, err := f.sut.RescheduleBooking(context.Background(), cancelled.ID, cmd, uuid.New(), "pharmacist", "10.0.0.1")

	assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	existing := f.confirmedAt(9, 0)
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.repo.On("Save", mock.Anything, existing).Return(nil)

	b, err := f.sut.CancelBooking(context.Background(), existing.ID, "client request", uuid.New(), "assistant", "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, b.Status)
	assert.Equal(t, "client request", b.CancellationReason)
}

func TestCancelBookingTwice(t *testing.T) {
	f := newBookingFixture(t)
	cancelled := f.confirmedAt(9, 0)
	require.NoError(t, cancelled.Cancel("first"))
	f.repo.On("GetByID", mock.Anything, cancelled.ID).Return(cancelled, nil)

	_, err := f.sut.CancelBooking(context.Background(), cancelled.ID, "again", uuid.New(), "assistant", "10.0.0.1")

	assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
}

func TestPromoteBookingIntoFreeSlot(t *testing.T) {
	f := newBookingFixture(t)
	waitlisted := f.confirmedAt(9, 0)
	waitlisted.Status = booking.StatusWaitlisted
	f.stubOpenMonday(waitlisted)
	f.repo.On("GetByID", mock.Anything, waitlisted.ID).Return(waitlisted, nil)
	f.repo.On("Save", mock.Anything, waitlisted).Return(nil)

	b, err := f.sut.PromoteBooking(context.Background(), waitlisted.ID, uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, b.Status)
}

func TestPromoteBookingSlotStillOccupied(t *testing.T) {
	f := newBookingFixture(t)
	waitlisted := f.confirmedAt(9, 0)
	waitlisted.Status = booking.StatusWaitlisted
	holder := f.confirmedAt(9, 0)
	f.stubOpenMonday(waitlisted, holder)
	f.repo.On("GetByID", mock.Anything, waitlisted.ID).Return(waitlisted, nil)

	_, err := f.sut.PromoteBooking(context.Background(), waitlisted.ID, uuid.New(), "pharmacist", "10.0.0.1")

	assert.ErrorIs(t, err, booking.ErrSlotOccupied)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPromoteBookingOutsideServiceHours(t *testing.T) {
	f := newBookingFixture(t)
	waitlisted := f.confirmedAt(15, 0)
	waitlisted.Status = booking.StatusWaitlisted
	f.stubOpenMonday(waitlisted)
	f.repo.On("GetByID", mock.Anything, waitlisted.ID).Return(waitlisted, nil)

	_, err := f.sut.PromoteBooking(context.Background(), waitlisted.ID, uuid.New(), "pharmacist", "10.0.0.1")

	assert.ErrorIs(t, err, booking.ErrOutsideServiceHours)
}

func TestPromoteBookingNotWaitlisted(t *testing.T) {
	f := newBookingFixture(t)
	confirmed := f.confirmedAt(9, 0)
	f.repo.On("GetByID", mock.Anything, confirmed.ID).Return(confirmed, nil)

	_, err := f.sut.PromoteBooking(context.Background(), confirmed.ID, uuid.New(), "pharmacist", "10.0.0.1")

	assert.ErrorIs(t, err, booking.ErrNotWaitlisted)
}

func TestListBookingsClampsPaging(t *testing.T) {
	f := newBookingFixture(t)
	f.repo.On("List", mock.Anything, mock.MatchedBy(func(q *booking.ListBookingsQuery) bool {
		return q.Page == 1 && q.PageSize == 20
	})).Return(&booking.PagedBookings{Page: 1, PageSize: 20}, nil)

	_, err := f.sut.ListBookings(context.Background(), &booking.ListBookingsQuery{Page: -3, PageSize: 500})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}
