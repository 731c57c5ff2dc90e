package schedule

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRecurring Kind = "recurring"
	KindSpecific  Kind = "specific"
)

func (k Kind) IsValid() bool {
	return k == KindRecurring || k == KindSpecific
}

// Window is a declared interval in which a service may be booked.
//
// A recurring window repeats on DayOfWeek, optionally limited to the
// WeekOfMonth-th occurrence of that weekday (nil means every week). A
// specific window applies to exactly one calendar date. The two variants
// never mix fields; NewRecurring/NewSpecific keep the invariant at
// construction and Validate re-checks rows that came from the store.
type Window struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	ServiceID uuid.UUID `gorm:"column:service_id;type:uuid;not null;index"`
	Kind      Kind      `gorm:"column:kind;type:varchar(20);not null"`

	// Recurring windows only. DayOfWeek follows time.Weekday: 0=Sunday.
	DayOfWeek   *int `gorm:"column:day_of_week"`
	WeekOfMonth *int `gorm:"column:week_of_month"`

	// Specific windows only.
	Date *time.Time `gorm:"column:date;type:date"`

	StartTime TimeOfDay `gorm:"column:start_minutes;not null"`
	EndTime   TimeOfDay `gorm:"column:end_minutes;not null"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Window) TableName() string {
	return "pharmacy.schedule_windows"
}

func NewRecurring(serviceID uuid.UUID, dayOfWeek time.Weekday, weekOfMonth *int, start, end TimeOfDay) *Window {
	day := int(dayOfWeek)
	return &Window{
		ServiceID:   serviceID,
		Kind:        KindRecurring,
		DayOfWeek:   &day,
		WeekOfMonth: weekOfMonth,
		StartTime:   start,
		EndTime:     end,
	}
}

func NewSpecific(serviceID uuid.UUID, date time.Time, start, end TimeOfDay) *Window {
	d := atMidnight(date)
	return &Window{
		ServiceID: serviceID,
		Kind:      KindSpecific,
		Date:      &d,
		StartTime: start,
		EndTime:   end,
	}
}

// Validate reports the first structural problem with the window. Callers
// computing over sets of windows should skip invalid ones and surface the
// error as a Warning rather than failing the whole query.
func (w *Window) Validate() error {
	if !w.Kind.IsValid() {
		return ErrInvalidKind
	}
	if !w.StartTime.Valid() || !w.EndTime.Valid() || w.EndTime <= w.StartTime {
		return ErrEndBeforeStart
	}

	switch w.Kind {
	case KindRecurring:
		if w.Date != nil {
			return ErrMixedFields
		}
		if w.DayOfWeek == nil || *w.DayOfWeek < 0 || *w.DayOfWeek > 6 {
			return ErrMissingDayOfWeek
		}
		if w.WeekOfMonth != nil && (*w.WeekOfMonth < 1 || *w.WeekOfMonth > 5) {
			return ErrInvalidWeek
		}
	case KindSpecific:
		if w.DayOfWeek != nil || w.WeekOfMonth != nil {
			return ErrMixedFields
		}
		if w.Date == nil || w.Date.IsZero() {
			return ErrMissingDate
		}
	}
	return nil
}

// AppliesTo reports whether a valid window covers the given calendar day.
func (w *Window) AppliesTo(day time.Time) bool {
	switch w.Kind {
	case KindRecurring:
		if int(day.Weekday()) != *w.DayOfWeek {
			return false
		}
		if w.WeekOfMonth != nil && weekOfMonth(day.Day()) != *w.WeekOfMonth {
			return false
		}
		return true
	case KindSpecific:
		return sameDate(*w.Date, day)
	}
	return false
}

// weekOfMonth buckets days of the month in fixed 7-day groups from day 1:
// days 1-7 are week 1, 8-14 week 2, and so on. The 5th bucket may hold
// fewer than seven days in short months.
func weekOfMonth(dayOfMonth int) int {
	return (dayOfMonth-1)/7 + 1
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type CreateWindowCommand struct {
	ServiceID   uuid.UUID
	Kind        Kind
	DayOfWeek   *int
	WeekOfMonth *int
	Date        *time.Time
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	CreatedBy   uuid.UUID
}

type UpdateWindowCommand struct {
	DayOfWeek   *int
	WeekOfMonth *int
	Date        *time.Time
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
	UpdatedBy   uuid.UUID
}
