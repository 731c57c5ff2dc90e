package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	svc "github.com/pharmflow/pharmflow/internal/domain/service"
	"github.com/pharmflow/pharmflow/internal/service"
)

type ServiceHandler struct {
	catalogSvc      *service.CatalogService
	availabilitySvc *service.AvailabilityService
}

func NewServiceHandler(catalogSvc *service.CatalogService, availabilitySvc *service.AvailabilityService) *ServiceHandler {
	return &ServiceHandler{catalogSvc: catalogSvc, availabilitySvc: availabilitySvc}
}

type createServiceRequest struct {
	PharmacyID   uuid.UUID `json:"pharmacy_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	DurationMins int       `json:"duration_mins" binding:"required,gt=0"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &svc.CreateServiceCommand{
		PharmacyID:   req.PharmacyID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		CreatedBy:    callerID(c),
	}

	created, err := h.catalogSvc.CreateService(c.Request.Context(), cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toServiceResponse(created))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	s, err := h.catalogSvc.GetService(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toServiceResponse(s))
}

type updateServiceRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DurationMins *int    `json:"duration_mins" binding:"omitempty,gt=0"`
	Active       *bool   `json:"active"`
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &svc.UpdateServiceCommand{
		Name:         req.Name,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		Active:       req.Active,
		UpdatedBy:    callerID(c),
	}

	updated, err := h.catalogSvc.UpdateService(c.Request.Context(), id, cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toServiceResponse(updated))
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteService(c.Request.Context(), id, callerID(c), string(callerRole(c)), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (h *ServiceHandler) ListByPharmacy(c *gin.Context) {
	pharmacyID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	services, err := h.catalogSvc.ListServices(c.Request.Context(), pharmacyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s))
	}
	respondOK(c, out)
}

// AvailableDates returns the calendar dates in a month on which the service
// has at least one schedule window.
func (h *ServiceHandler) AvailableDates(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	year := parseQueryInt(c, "year", time.Now().UTC().Year())
	month := parseQueryInt(c, "month", int(time.Now().UTC().Month()))
	if month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, "invalid month: expected 1-12")
		return
	}

	dates, warnings, err := h.availabilitySvc.GetAvailableDates(c.Request.Context(), id, year, time.Month(month))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := availableDatesResponse{
		Year:  year,
		Month: month,
		Dates: make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format("2006-01-02"))
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.Message)
	}

	respondOK(c, resp)
}

// DaySlots returns the full slot layout for one date, with each slot's
// occupancy, plus the day's waitlist and any bookings that no longer line
// up with the current windows.
func (h *ServiceHandler) DaySlots(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	day, ok := parseQueryDate(c, "date")
	if !ok {
		return
	}

	da, warnings, err := h.availabilitySvc.GetDaySlots(c.Request.Context(), id, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toDayAvailabilityResponse(day, da, warnings))
}
