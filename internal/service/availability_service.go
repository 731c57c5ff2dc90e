package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/availability"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
	"github.com/pharmflow/pharmflow/pkg/metrics"
)

// AvailabilityService answers the three scheduling questions: which dates a
// service offers in a month, how a single day's slots are occupied, and how
// a proposed booking classifies. Every call recomputes over a snapshot
// fetched from the store; nothing is cached between requests, so two
// concurrent clients may both see a slot as free. The store's unique index
// on confirmed slots settles that race at write time.
type AvailabilityService struct {
	services svc.Repository
	windows  schedule.Repository
	bookings booking.Repository
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewAvailabilityService(
	services svc.Repository,
	windows schedule.Repository,
	bookings booking.Repository,
	collector *metrics.Collector,
	log *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		services: services,
		windows:  windows,
		bookings: bookings,
		metrics:  collector,
		log:      log,
	}
}

// GetAvailableDates lists the calendar dates in a month on which the service
// offers at least one window, ascending and deduplicated. Drives the date
// picker. Malformed windows are skipped and reported as warnings.
func (s *AvailabilityService) GetAvailableDates(ctx context.Context, serviceID uuid.UUID, year int, month time.Month) ([]time.Time, []schedule.Warning, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return nil, nil, err
	}

	windows, err := s.windows.ListByService(ctx, serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing schedule windows: %w", err)
	}

	dates, warnings := schedule.MonthDates(windows, year, month, time.UTC)
	s.reportWarnings(serviceID, warnings)
	return dates, warnings, nil
}

// GetDaySlots returns the resolved availability of one service day: every
// generated slot with its occupancy, the day's waitlist, and any confirmed
// bookings that no longer match a slot.
func (s *AvailabilityService) GetDaySlots(ctx context.Context, serviceID uuid.UUID, day time.Time) (*availability.DayAvailability, []schedule.Warning, error) {
	return s.resolveDay(ctx, serviceID, day, nil)
}

// ClassifyBookingRequest decides whether the proposed booking would be
// confirmed, waitlisted, or rejected. It never persists anything; a
// classification can be stale by the time the caller commits, which the
// store's uniqueness constraint catches.
func (s *AvailabilityService) ClassifyBookingRequest(ctx context.Context, req availability.Request) (availability.Outcome, error) {
	sv, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, svc.ErrServiceNotFound) {
			return availability.Classify(req, nil, availability.DayAvailability{}), nil
		}
		return availability.Outcome{}, err
	}

	day, _, err := s.resolveDay(ctx, req.ServiceID, req.Day, req.ExcludeBookingID)
	if err != nil {
		return availability.Outcome{}, err
	}

	outcome := availability.Classify(req, sv, *day)
	if s.metrics != nil {
		s.metrics.BookingDecisionsTotal.WithLabelValues(string(outcome.Decision)).Inc()
	}
	return outcome, nil
}

func (s *AvailabilityService) resolveDay(ctx context.Context, serviceID uuid.UUID, day time.Time, excludeID *uuid.UUID) (*availability.DayAvailability, []schedule.Warning, error) {
	start := time.Now()

	sv, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}

	windows, err := s.windows.ListByService(ctx, serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing schedule windows: %w", err)
	}

	applicable, warnings := schedule.WindowsForDay(windows, day)
	s.reportWarnings(serviceID, warnings)

	starts := schedule.SlotStarts(sv.DurationMins, applicable)

	bookingsForDay, err := s.bookings.ListForDay(ctx, serviceID, day)
	if err != nil {
		return nil, nil, fmt.Errorf("listing bookings: %w", err)
	}

	resolved := availability.Resolve(starts, bookingsForDay, excludeID)

	if s.metrics != nil {
		s.metrics.SlotQueryDuration.Observe(time.Since(start).Seconds())
	}
	return &resolved, warnings, nil
}

func (s *AvailabilityService) reportWarnings(serviceID uuid.UUID, warnings []schedule.Warning) {
	for _, w := range warnings {
		s.log.Warn("skipping malformed schedule window",
			zap.String("service_id", serviceID.String()),
			zap.String("window_id", w.WindowID.String()),
			zap.Error(w.Err),
		)
		if s.metrics != nil {
			s.metrics.WindowWarningsTotal.Inc()
		}
	}
}
