package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/availability"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/pkg/metrics"
)

type BookingService struct {
	repo         booking.Repository
	availability *AvailabilityService
	auditSvc     *AuditService
	metrics      *metrics.Collector
	log          *zap.Logger
}

func NewBookingService(
	repo booking.Repository,
	availabilitySvc *AvailabilityService,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:         repo,
		availability: availabilitySvc,
		auditSvc:     auditSvc,
		metrics:      collector,
		log:          log,
	}
}

// CreateBooking classifies the request and, unless it was rejected, persists
// the booking with the decided status. A rejection is a normal outcome for
// the caller, not an error; the error return carries infrastructure
// failures and the write-time slot race (booking.ErrSlotOccupied).
func (s *BookingService) CreateBooking(ctx context.Context, cmd *booking.CreateBookingCommand, callerID uuid.UUID, callerRole string, ip string) (*booking.Booking, availability.Outcome, error) {
	outcome, err := s.availability.ClassifyBookingRequest(ctx, availability.Request{
		ServiceID:     cmd.ServiceID,
		PharmacyID:    cmd.PharmacyID,
		Day:           cmd.Day,
		Start:         cmd.StartTime,
		ClientName:    cmd.ClientName,
		AllowWaitlist: cmd.AllowWaitlist,
	})
	if err != nil {
		return nil, availability.Outcome{}, err
	}
	if outcome.Decision == availability.DecisionRejected {
		return nil, outcome, nil
	}

	status := booking.StatusConfirmed
	if outcome.Decision == availability.DecisionWaitlisted {
		status = booking.StatusWaitlisted
	}

	b := &booking.Booking{
		ServiceID:   cmd.ServiceID,
		PharmacyID:  cmd.PharmacyID,
		ScheduledAt: cmd.StartTime.At(cmd.Day),
		Status:      status,
		ClientName:  cmd.ClientName,
		ClientPhone: cmd.ClientPhone,
		ClientEmail: cmd.ClientEmail,
		Note:        cmd.Note,
		CreatedBy:   cmd.CreatedBy,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		// The slot was free at classification time but another write won the
		// race. Surface the conflict so the caller can re-query and offer
		// the waitlist.
		s.log.Warn("booking lost the slot race", zap.Error(err),
			zap.String("service_id", cmd.ServiceID.String()),
		)
		return nil, availability.Outcome{}, err
	}

	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(string(b.Status)).Inc()
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "booking",
		ResourceID:   b.ID.String(),
		IPAddress:    ip,
	})

	return b, outcome, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// RescheduleBooking moves a booking to a new day and time. The booking's own
// current slot is treated as vacated while classifying, so moving a booking
// onto the time it already holds confirms rather than conflicts.
func (s *BookingService) RescheduleBooking(ctx context.Context, id uuid.UUID, cmd *booking.RescheduleBookingCommand, callerID uuid.UUID, callerRole string, ip string) (*booking.Booking, availability.Outcome, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, availability.Outcome{}, err
	}
	if b.Status == booking.StatusCancelled {
		return nil, availability.Outcome{}, booking.ErrInvalidStatusTransition
	}

	outcome, err := s.availability.ClassifyBookingRequest(ctx, availability.Request{
		ServiceID:        b.ServiceID,
		PharmacyID:       b.PharmacyID,
		Day:              cmd.Day,
		Start:            cmd.StartTime,
		ClientName:       b.ClientName,
		AllowWaitlist:    cmd.AllowWaitlist,
		ExcludeBookingID: &b.ID,
	})
	if err != nil {
		return nil, availability.Outcome{}, err
	}
	if outcome.Decision == availability.DecisionRejected {
		return nil, outcome, nil
	}

	b.ScheduledAt = cmd.StartTime.At(cmd.Day)
	if outcome.Decision == availability.DecisionWaitlisted {
		b.Status = booking.StatusWaitlisted
	} else {
		b.Status = booking.StatusConfirmed
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, availability.Outcome{}, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "update",
		ResourceType: "booking",
		ResourceID:   b.ID.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"scheduled_at":%q,"status":%q}`, b.ScheduledAt.Format("2006-01-02 15:04"), b.Status),
	})

	return b, outcome, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, reason string, callerID uuid.UUID, callerRole string, ip string) (*booking.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("updating booking status: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(string(booking.StatusCancelled)).Inc()
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "booking", ResourceID: id.String(), IPAddress: ip,
		Changes: fmt.Sprintf(`{"status":"cancelled","reason":%q}`, reason),
	})

	return b, nil
}

// PromoteBooking tries to move a waitlisted booking into its slot. It only
// succeeds if the slot is free at promotion time; otherwise the booking
// stays on the waitlist and the conflict is reported.
func (s *BookingService) PromoteBooking(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) (*booking.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusWaitlisted {
		return nil, booking.ErrNotWaitlisted
	}

	outcome, err := s.availability.ClassifyBookingRequest(ctx, availability.Request{
		ServiceID:        b.ServiceID,
		PharmacyID:       b.PharmacyID,
		Day:              b.Day(),
		Start:            b.SlotTime(),
		ClientName:       b.ClientName,
		ExcludeBookingID: &b.ID,
	})
	if err != nil {
		return nil, err
	}
	if outcome.Decision != availability.DecisionConfirmed {
		switch outcome.Reason {
		case "slot occupied":
			return nil, booking.ErrSlotOccupied
		default:
			return nil, booking.ErrOutsideServiceHours
		}
	}

	b.Status = booking.StatusConfirmed
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(string(booking.StatusConfirmed)).Inc()
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "booking", ResourceID: id.String(), IPAddress: ip,
		Changes: `{"status":"confirmed","promoted":true}`,
	})

	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, q *booking.ListBookingsQuery) (*booking.PagedBookings, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}
