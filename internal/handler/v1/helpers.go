package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
	"github.com/pharmflow/pharmflow/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, pharmacy.ErrPharmacyNotFound),
		errors.Is(err, svc.ErrServiceNotFound),
		errors.Is(err, schedule.ErrWindowNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, booking.ErrSlotOccupied):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "SLOT_OCCUPIED"})

	case errors.Is(err, schedule.ErrEndBeforeStart),
		errors.Is(err, schedule.ErrInvalidKind),
		errors.Is(err, schedule.ErrMissingDayOfWeek),
		errors.Is(err, schedule.ErrMissingDate),
		errors.Is(err, schedule.ErrInvalidWeek),
		errors.Is(err, schedule.ErrMixedFields),
		errors.Is(err, svc.ErrMissingName),
		errors.Is(err, svc.ErrInvalidDuration),
		errors.Is(err, pharmacy.ErrMissingName),
		errors.Is(err, booking.ErrOutsideServiceHours),
		errors.Is(err, booking.ErrInvalidStatusTransition),
		errors.Is(err, booking.ErrNotWaitlisted),
		errors.Is(err, booking.ErrMissingClient):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrAccountLocked):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "account temporarily locked",
			Code:  "ACCOUNT_LOCKED",
		})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

// parseQueryDate reads a required YYYY-MM-DD query parameter as a UTC date.
func parseQueryDate(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key + ": expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}
