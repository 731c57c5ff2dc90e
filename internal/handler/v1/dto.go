package v1

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain/availability"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

// Responses are shaped here rather than by tagging the domain entities, so
// the wire format can evolve without touching the persistence model.

type pharmacyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	ZipCode     string    `json:"zip_code,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPharmacyResponse(p *pharmacy.Pharmacy) pharmacyResponse {
	return pharmacyResponse{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: p.DisplayName(),
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		City:        p.City,
		ZipCode:     p.ZipCode,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

type serviceResponse struct {
	ID           uuid.UUID `json:"id"`
	PharmacyID   uuid.UUID `json:"pharmacy_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DurationMins int       `json:"duration_mins"`
	Color        string    `json:"color"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func toServiceResponse(s *svc.Service) serviceResponse {
	return serviceResponse{
		ID:           s.ID,
		PharmacyID:   s.PharmacyID,
		Name:         s.Name,
		Description:  s.Description,
		DurationMins: s.DurationMins,
		Color:        s.Color(),
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
	}
}

type windowResponse struct {
	ID          uuid.UUID          `json:"id"`
	ServiceID   uuid.UUID          `json:"service_id"`
	Kind        schedule.Kind      `json:"kind"`
	DayOfWeek   *int               `json:"day_of_week,omitempty"`
	WeekOfMonth *int               `json:"week_of_month,omitempty"`
	Date        *string            `json:"date,omitempty"`
	StartTime   schedule.TimeOfDay `json:"start_time"`
	EndTime     schedule.TimeOfDay `json:"end_time"`
}

func toWindowResponse(w *schedule.Window) windowResponse {
	resp := windowResponse{
		ID:          w.ID,
		ServiceID:   w.ServiceID,
		Kind:        w.Kind,
		DayOfWeek:   w.DayOfWeek,
		WeekOfMonth: w.WeekOfMonth,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
	}
	if w.Date != nil {
		d := w.Date.Format("2006-01-02")
		resp.Date = &d
	}
	return resp
}

type bookingResponse struct {
	ID                 uuid.UUID          `json:"id"`
	ServiceID          uuid.UUID          `json:"service_id"`
	PharmacyID         uuid.UUID          `json:"pharmacy_id"`
	ScheduledAt        time.Time          `json:"scheduled_at"`
	Day                string             `json:"day"`
	StartTime          schedule.TimeOfDay `json:"start_time"`
	Status             booking.Status     `json:"status"`
	ClientName         string             `json:"client_name"`
	ClientPhone        string             `json:"client_phone,omitempty"`
	ClientEmail        string             `json:"client_email,omitempty"`
	Note               string             `json:"note,omitempty"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) bookingResponse {
	return bookingResponse{
		ID:                 b.ID,
		ServiceID:          b.ServiceID,
		PharmacyID:         b.PharmacyID,
		ScheduledAt:        b.ScheduledAt,
		Day:                b.Day().Format("2006-01-02"),
		StartTime:          b.SlotTime(),
		Status:             b.Status,
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		ClientEmail:        b.ClientEmail,
		Note:               b.Note,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
	}
}

func toBookingResponses(bookings []*booking.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

type slotResponse struct {
	Start     schedule.TimeOfDay `json:"start"`
	Available bool               `json:"available"`
	Booking   *bookingResponse   `json:"booking,omitempty"`
}

type dayAvailabilityResponse struct {
	Date      string            `json:"date"`
	Slots     []slotResponse    `json:"slots"`
	Waitlist  []bookingResponse `json:"waitlist"`
	Unmatched []bookingResponse `json:"unmatched"`
	Warnings  []string          `json:"warnings,omitempty"`
}

func toDayAvailabilityResponse(day time.Time, da *availability.DayAvailability, warnings []schedule.Warning) dayAvailabilityResponse {
	slots := make([]slotResponse, 0, len(da.Slots))
	for _, s := range da.Slots {
		sr := slotResponse{Start: s.Start, Available: s.Available}
		if s.Booking != nil {
			br := toBookingResponse(s.Booking)
			sr.Booking = &br
		}
		slots = append(slots, sr)
	}

	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.Message)
	}

	return dayAvailabilityResponse{
		Date:      day.Format("2006-01-02"),
		Slots:     slots,
		Waitlist:  toBookingResponses(da.Waitlist),
		Unmatched: toBookingResponses(da.Unmatched),
		Warnings:  msgs,
	}
}

type availableDatesResponse struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Dates    []string `json:"dates"`
	Warnings []string `json:"warnings,omitempty"`
}

type pagedBookingsResponse struct {
	Bookings   []bookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
