package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain/availability"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	"github.com/pharmflow/pharmflow/internal/service"
)

type BookingHandler struct {
	bookingSvc *service.BookingService
}

func NewBookingHandler(bookingSvc *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	ServiceID     uuid.UUID          `json:"service_id" binding:"required"`
	PharmacyID    uuid.UUID          `json:"pharmacy_id" binding:"required"`
	Date          string             `json:"date" binding:"required"`
	StartTime     schedule.TimeOfDay `json:"start_time"`
	ClientName    string             `json:"client_name" binding:"required"`
	ClientPhone   string             `json:"client_phone"`
	ClientEmail   string             `json:"client_email" binding:"omitempty,email"`
	Note          string             `json:"note"`
	AllowWaitlist bool               `json:"allow_waitlist"`
}

type bookingDecisionResponse struct {
	Decision availability.Decision `json:"decision"`
	Reason   string                `json:"reason,omitempty"`
	Booking  *bookingResponse      `json:"booking,omitempty"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	cmd := &booking.CreateBookingCommand{
		ServiceID:     req.ServiceID,
		PharmacyID:    req.PharmacyID,
		Day:           day,
		StartTime:     req.StartTime,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		Note:          req.Note,
		AllowWaitlist: req.AllowWaitlist,
		CreatedBy:     callerID(c),
	}

	b, outcome, err := h.bookingSvc.CreateBooking(c.Request.Context(), cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if b == nil {
		c.JSON(http.StatusConflict, bookingDecisionResponse{
			Decision: outcome.Decision,
			Reason:   outcome.Reason,
		})
		return
	}

	br := toBookingResponse(b)
	respondCreated(c, bookingDecisionResponse{
		Decision: outcome.Decision,
		Reason:   outcome.Reason,
		Booking:  &br,
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingSvc.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toBookingResponse(b))
}

type rescheduleBookingRequest struct {
	Date          string             `json:"date" binding:"required"`
	StartTime     schedule.TimeOfDay `json:"start_time"`
	AllowWaitlist bool               `json:"allow_waitlist"`
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req rescheduleBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	cmd := &booking.RescheduleBookingCommand{
		Day:           day,
		StartTime:     req.StartTime,
		AllowWaitlist: req.AllowWaitlist,
		UpdatedBy:     callerID(c),
	}

	b, outcome, err := h.bookingSvc.RescheduleBooking(c.Request.Context(), id, cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if b == nil {
		c.JSON(http.StatusConflict, bookingDecisionResponse{
			Decision: outcome.Decision,
			Reason:   outcome.Reason,
		})
		return
	}

	br := toBookingResponse(b)
	respondOK(c, bookingDecisionResponse{
		Decision: outcome.Decision,
		Reason:   outcome.Reason,
		Booking:  &br,
	})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req cancelBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bookingSvc.CancelBooking(c.Request.Context(), id, req.Reason, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toBookingResponse(b))
}

// Promote moves a waitlisted booking into its slot, provided the slot is
// currently free and inside service hours.
func (h *BookingHandler) Promote(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingSvc.PromoteBooking(c.Request.Context(), id, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toBookingResponse(b))
}

func (h *BookingHandler) List(c *gin.Context) {
	q := &booking.ListBookingsQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 20),
	}

	if raw := c.Query("service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid service_id: must be a valid UUID")
			return
		}
		q.ServiceID = &id
	}
	if raw := c.Query("pharmacy_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid pharmacy_id: must be a valid UUID")
			return
		}
		q.PharmacyID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := booking.Status(raw)
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid status")
			return
		}
		q.Status = &status
	}
	if raw := c.Query("date_from"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date_from: expected YYYY-MM-DD")
			return
		}
		q.DateFrom = &d
	}
	if raw := c.Query("date_to"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date_to: expected YYYY-MM-DD")
			return
		}
		q.DateTo = &d
	}

	paged, err := h.bookingSvc.ListBookings(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pagedBookingsResponse{
		Bookings:   toBookingResponses(paged.Bookings),
		TotalCount: paged.TotalCount,
		Page:       paged.Page,
		PageSize:   paged.PageSize,
		TotalPages: paged.TotalPages,
	})
}
