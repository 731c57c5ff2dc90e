package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain/schedule"
)

// State transitions possibilities:
//
//	confirmed → cancelled
//	waitlisted → confirmed (promotion into a freed slot)
//	waitlisted → cancelled
type Status string

const (
	// StatusConfirmed holds a slot: exactly one confirmed booking may occupy
	// a given (service, date, start time); the store enforces this with a
	// partial unique index at write time.
	StatusConfirmed Status = "confirmed"
	// StatusWaitlisted records a client beyond capacity. Any number may share
	// a slot; the stored time is advisory and never blocks availability.
	StatusWaitlisted Status = "waitlisted"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusWaitlisted, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	ServiceID  uuid.UUID `gorm:"column:service_id;type:uuid;not null;index"`
	PharmacyID uuid.UUID `gorm:"column:pharmacy_id;type:uuid;not null;index"`

	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;index"`
	Status      Status    `gorm:"column:status;type:varchar(20);not null;index"`

	ClientName  string `gorm:"column:client_name;type:varchar(200);not null"`
	ClientPhone string `gorm:"column:client_phone;type:varchar(20)"`
	ClientEmail string `gorm:"column:client_email;type:varchar(255)"`
	Note        string `gorm:"column:note;type:text"`

	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancellationReason string     `gorm:"column:cancellation_reason;type:text"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Booking) TableName() string {
	return "pharmacy.bookings"
}

// SlotTime is the booking's wall-clock start, truncated to the minute.
// Stored timestamps may carry seconds or offset artifacts; slot matching
// only ever compares at minute precision.
func (b *Booking) SlotTime() schedule.TimeOfDay {
	return schedule.TimeOfDayOf(b.ScheduledAt)
}

// Day is the booking's calendar date at midnight in its own location.
func (b *Booking) Day() time.Time {
	return time.Date(b.ScheduledAt.Year(), b.ScheduledAt.Month(), b.ScheduledAt.Day(), 0, 0, 0, 0, b.ScheduledAt.Location())
}

func (b *Booking) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusConfirmed:  {StatusCancelled},
		StatusWaitlisted: {StatusConfirmed, StatusCancelled},
		StatusCancelled:  {},
	}

	for _, s := range allowed[b.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (b *Booking) Cancel(reason string) error {
	if !b.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancellationReason = reason
	return nil
}

type CreateBookingCommand struct {
	ServiceID   uuid.UUID
	PharmacyID  uuid.UUID
	Day         time.Time
	StartTime   schedule.TimeOfDay
	ClientName  string
	ClientPhone string
	ClientEmail string
	Note        string

	// AllowWaitlist is the caller's explicit opt-in to be recorded beyond
	// capacity when the requested time is occupied or outside service hours.
	// It is never chosen silently by the engine.
	AllowWaitlist bool

	CreatedBy uuid.UUID
}

type RescheduleBookingCommand struct {
	Day           time.Time
	StartTime     schedule.TimeOfDay
	AllowWaitlist bool
	UpdatedBy     uuid.UUID
}

type ListBookingsQuery struct {
	ServiceID  *uuid.UUID
	PharmacyID *uuid.UUID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

type PagedBookings struct {
	Bookings   []*Booking
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
