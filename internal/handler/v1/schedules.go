package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	"github.com/pharmflow/pharmflow/internal/service"
)

type ScheduleHandler struct {
	scheduleSvc *service.ScheduleService
}

func NewScheduleHandler(scheduleSvc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

type createWindowRequest struct {
	Kind        schedule.Kind      `json:"kind" binding:"required"`
	DayOfWeek   *int               `json:"day_of_week"`
	WeekOfMonth *int               `json:"week_of_month"`
	Date        *string            `json:"date"`
	StartTime   schedule.TimeOfDay `json:"start_time"`
	EndTime     schedule.TimeOfDay `json:"end_time"`
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	serviceID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req createWindowRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &schedule.CreateWindowCommand{
		ServiceID:   serviceID,
		Kind:        req.Kind,
		DayOfWeek:   req.DayOfWeek,
		WeekOfMonth: req.WeekOfMonth,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedBy:   callerID(c),
	}
	if req.Date != nil {
		d, err := time.ParseInLocation("2006-01-02", *req.Date, time.UTC)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
			return
		}
		cmd.Date = &d
	}

	w, err := h.scheduleSvc.CreateWindow(c.Request.Context(), cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toWindowResponse(w))
}

type updateWindowRequest struct {
	DayOfWeek   *int                `json:"day_of_week"`
	WeekOfMonth *int                `json:"week_of_month"`
	Date        *string             `json:"date"`
	StartTime   *schedule.TimeOfDay `json:"start_time"`
	EndTime     *schedule.TimeOfDay `json:"end_time"`
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateWindowRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &schedule.UpdateWindowCommand{
		DayOfWeek:   req.DayOfWeek,
		WeekOfMonth: req.WeekOfMonth,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		UpdatedBy:   callerID(c),
	}
	if req.Date != nil {
		d, err := time.ParseInLocation("2006-01-02", *req.Date, time.UTC)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
			return
		}
		cmd.Date = &d
	}

	w, err := h.scheduleSvc.UpdateWindow(c.Request.Context(), id, cmd, callerID(c), string(callerRole(c)), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toWindowResponse(w))
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleSvc.DeleteWindow(c.Request.Context(), id, callerID(c), string(callerRole(c)), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (h *ScheduleHandler) ListByService(c *gin.Context) {
	serviceID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	windows, err := h.scheduleSvc.ListWindows(c.Request.Context(), serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]windowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, toWindowResponse(w))
	}
	respondOK(c, out)
}
